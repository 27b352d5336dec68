package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(0))
	assert.Empty(t, s.Indices())
}

func TestSelection_AddRemove(t *testing.T) {
	var s Selection

	s.Add(3)
	s.Add(1)
	s.Add(3)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(1))
	assert.True(t, s.Has(3))

	s.Remove(3)
	assert.False(t, s.Has(3))
	assert.Equal(t, 1, s.Len())
}

func TestSelection_Toggle(t *testing.T) {
	var s Selection

	assert.True(t, s.Toggle(2))
	assert.True(t, s.Has(2))
	assert.False(t, s.Toggle(2))
	assert.False(t, s.Has(2))
}

func TestSelection_IndicesSorted(t *testing.T) {
	var s Selection
	for _, i := range []int{9, 2, 5, 0} {
		s.Add(i)
	}

	assert.Equal(t, []int{0, 2, 5, 9}, s.Indices())
}

func TestSelection_Clear(t *testing.T) {
	var s Selection
	s.Add(1)
	s.Add(2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	s.Add(4)
	assert.Equal(t, []int{4}, s.Indices())
}
