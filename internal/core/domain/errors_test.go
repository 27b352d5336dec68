package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allErrors() []error {
	return []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnsupportedInput,
		ErrDecodeFailure,
		ErrNoDocument,
		ErrExportInProgress,
		ErrIndexOutOfRange,
		ErrNotSelectable,
		ErrEmptySelection,
		ErrRenderFailure,
		ErrEncodeOrSave,
		ErrUnsupportedFormat,
	}
}

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotFound, "not found"},
		{ErrInvalidInput, "invalid input"},
		{ErrUnsupportedInput, "unsupported input"},
		{ErrDecodeFailure, "decode failure"},
		{ErrNoDocument, "no document loaded"},
		{ErrExportInProgress, "export in progress"},
		{ErrIndexOutOfRange, "entry index out of range"},
		{ErrNotSelectable, "entry is not selectable"},
		{ErrEmptySelection, "no layers selected"},
		{ErrRenderFailure, "layer render failed"},
		{ErrEncodeOrSave, "encode or save failed"},
		{ErrUnsupportedFormat, "unsupported image format"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that no sentinel matches another
func TestErrors_Distinct(t *testing.T) {
	errs := allErrors()
	for i, a := range errs {
		for j, b := range errs {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors still match
func TestErrors_Wrapping(t *testing.T) {
	for _, err := range allErrors() {
		wrapped := fmt.Errorf("load poster.psd: %w", err)
		assert.ErrorIs(t, wrapped, err)
	}

	joined := fmt.Errorf("%w: %w", ErrRenderFailure, errors.New("zero-sized raster"))
	assert.ErrorIs(t, joined, ErrRenderFailure)
	assert.NotErrorIs(t, joined, ErrEncodeOrSave)
}
