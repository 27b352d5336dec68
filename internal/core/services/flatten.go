package services

import (
	"strconv"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// Placeholder names for unnamed nodes.
const (
	placeholderGroup = "Group"
	placeholderLayer = "Layer"
)

// flattener accumulates entries and the leaf counter for one walk.
type flattener struct {
	entries []domain.FlatEntry
	ordinal int
}

// Flatten converts a document's layer tree into the flat, numbered list
// shown to the user.
//
// Nodes are visited depth-first with children in reverse stored order at
// every level, so the topmost layer comes first. Groups are always listed
// and never numbered. Leaves without pixel content are dropped without
// consuming an ordinal. The result is deterministic for a given document.
func Flatten(doc *domain.Document) []domain.FlatEntry {
	if doc == nil {
		return nil
	}
	f := &flattener{}
	f.walk(doc.Layers, 0)
	return f.entries
}

func (f *flattener) walk(nodes []*domain.LayerNode, depth int) {
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		if node == nil {
			continue
		}

		if node.IsGroup() {
			name := node.Name
			if name == "" {
				name = placeholderGroup
			}
			f.entries = append(f.entries, domain.FlatEntry{
				DisplayName: name,
				IsGroup:     true,
				Depth:       depth,
			})
			f.walk(node.Children, depth+1)
			continue
		}

		if !node.HasContent() {
			continue
		}

		f.ordinal++
		name := node.Name
		if name == "" {
			name = placeholderLayer + " " + strconv.Itoa(f.ordinal)
		}
		f.entries = append(f.entries, domain.FlatEntry{
			DisplayName: name,
			Depth:       depth,
			Ordinal:     f.ordinal,
			Source:      node,
		})
	}
}
