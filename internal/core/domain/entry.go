package domain

import "fmt"

// FlatEntry is one row of the flattened layer list.
// Entries are immutable once built for a document.
type FlatEntry struct {
	// DisplayName is the layer name or a generated placeholder.
	DisplayName string

	// IsGroup marks folder rows. Groups are never selectable or exported.
	IsGroup bool

	// Depth is the nesting level, 0 for top-level nodes.
	Depth int

	// Ordinal numbers exportable leaves 1..K in list order. Always 0 for groups.
	Ordinal int

	// Source is the originating node. Nil for groups.
	Source *LayerNode
}

// OrdinalLabel returns the ordinal zero-padded to at least three digits.
func (e FlatEntry) OrdinalLabel() string {
	return fmt.Sprintf("%03d", e.Ordinal)
}

// Selectable returns true if the entry may be placed in a selection.
func (e FlatEntry) Selectable() bool {
	return !e.IsGroup && e.Source != nil
}

// CountLeaves returns the number of non-group entries.
func CountLeaves(entries []FlatEntry) int {
	n := 0
	for i := range entries {
		if !entries[i].IsGroup {
			n++
		}
	}
	return n
}
