package cli

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

func TestParseOrdinals(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int
	}{
		{"single", "3", []int{3}},
		{"list", "1,3,5", []int{1, 3, 5}},
		{"range", "2-4", []int{2, 3, 4}},
		{"mixed with spaces", " 7, 1-2 ,9", []int{7, 1, 2, 9}},
		{"duplicates dropped", "1,1-3,2", []int{1, 2, 3}},
		{"zero padded", "001,010", []int{1, 10}},
		{"trailing comma", "4,", []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrdinals(tt.in, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrdinals_Invalid(t *testing.T) {
	for _, in := range []string{"", ",", "0", "-1", "a", "3-1", "1-b", "1.5"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseOrdinals(in, 10)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParseOrdinals_AboveMaximum(t *testing.T) {
	huge := strconv.Itoa(math.MaxInt)
	tests := []struct {
		name string
		in   string
	}{
		{"single", "11"},
		{"range end", "8-11"},
		{"range start", "11-12"},
		{"wide range", "1-2000000000"},
		{"range ending at max int", strconv.Itoa(math.MaxInt-1) + "-" + huge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := parseOrdinals(tt.in, 10)
				done <- err
			}()

			select {
			case err := <-done:
				assert.ErrorIs(t, err, domain.ErrNotFound)
			case <-time.After(time.Second):
				t.Fatalf("parseOrdinals(%q) did not return", tt.in)
			}
		})
	}
}

func TestParseOrdinals_RangeUpToMaximum(t *testing.T) {
	got, err := parseOrdinals("2-4", 4)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, got)
}
