package services

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

func TestFlatten_SampleDocument(t *testing.T) {
	entries := Flatten(sampleDocument())

	require.Len(t, entries, 5)

	want := []struct {
		name    string
		group   bool
		depth   int
		ordinal int
	}{
		{"Overlay", false, 0, 1},
		{"Characters", true, 0, 0},
		{"Hero", false, 1, 2},
		{"Shadow", false, 1, 3},
		{"Background", false, 0, 4},
	}
	for i, w := range want {
		e := entries[i]
		assert.Equal(t, w.name, e.DisplayName, "entry %d", i)
		assert.Equal(t, w.group, e.IsGroup, "entry %d", i)
		assert.Equal(t, w.depth, e.Depth, "entry %d", i)
		assert.Equal(t, w.ordinal, e.Ordinal, "entry %d", i)
	}

	assert.Nil(t, entries[1].Source)
	assert.Equal(t, "Hero", entries[2].Source.Name)
}

func TestFlatten_OrdinalsContiguous(t *testing.T) {
	doc := &domain.Document{Layers: []*domain.LayerNode{
		empty("a"),
		leaf("b", 0, 0, 1, 1, red),
		group("g1", empty("c"), group("g2", leaf("d", 0, 0, 1, 1, red), empty("e"))),
		{Name: "zero", Raster: image.NewNRGBA(image.Rect(0, 0, 0, 5))},
		leaf("f", 0, 0, 1, 1, red),
	}}

	entries := Flatten(doc)

	var ordinals []int
	for _, e := range entries {
		if e.IsGroup {
			assert.Zero(t, e.Ordinal)
			continue
		}
		ordinals = append(ordinals, e.Ordinal)
	}
	assert.Equal(t, []int{1, 2, 3}, ordinals)
	assert.Equal(t, 3, domain.CountLeaves(entries))
}

func TestFlatten_GroupDepths(t *testing.T) {
	doc := &domain.Document{Layers: []*domain.LayerNode{
		group("outer", group("inner", leaf("deep", 0, 0, 1, 1, red))),
	}}

	entries := Flatten(doc)

	require.Len(t, entries, 3)
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, 1, entries[1].Depth)
	assert.Equal(t, 2, entries[2].Depth)
	assert.True(t, entries[1].IsGroup)
}

func TestFlatten_GroupWithOnlyEmptyLeavesStillListed(t *testing.T) {
	doc := &domain.Document{Layers: []*domain.LayerNode{group("hollow", empty("x"))}}

	entries := Flatten(doc)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsGroup)
	assert.Equal(t, "hollow", entries[0].DisplayName)
}

func TestFlatten_Placeholders(t *testing.T) {
	doc := &domain.Document{Layers: []*domain.LayerNode{
		leaf("", 0, 0, 1, 1, red),
		group("", leaf("", 0, 0, 1, 1, red)),
	}}

	entries := Flatten(doc)

	require.Len(t, entries, 3)
	assert.Equal(t, "Group", entries[0].DisplayName)
	assert.Equal(t, "Layer 1", entries[1].DisplayName)
	assert.Equal(t, "Layer 2", entries[2].DisplayName)
}

func TestFlatten_HiddenLayersAreListed(t *testing.T) {
	hidden := leaf("hidden", 0, 0, 1, 1, red)
	hidden.Hidden = true
	doc := &domain.Document{Layers: []*domain.LayerNode{hidden}}

	entries := Flatten(doc)

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Ordinal)
}

func TestFlatten_Deterministic(t *testing.T) {
	doc := sampleDocument()

	assert.Equal(t, Flatten(doc), Flatten(doc))
}

func TestFlatten_EmptyAndNil(t *testing.T) {
	assert.Nil(t, Flatten(nil))
	assert.Empty(t, Flatten(&domain.Document{}))
}
