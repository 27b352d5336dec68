package domain

import (
	"image"
	"path/filepath"
	"strings"
)

// LayerNode is one node of a decoded layer tree.
// Nodes are owned by the decoder and are read-only to the core.
type LayerNode struct {
	// Name is the layer name as stored in the document. May be empty.
	Name string

	// Children holds the nested nodes of a group, in stored order.
	// Leaf nodes have no children.
	Children []*LayerNode

	// Raster is the decoded pixel content of a leaf layer. May be nil.
	Raster image.Image

	// Left and Top position the raster's origin on the document canvas.
	Left int
	Top  int

	// Hidden mirrors the layer visibility flag. It is shown in listings
	// but never affects flattening or export.
	Hidden bool
}

// IsGroup returns true if the node has children.
func (n *LayerNode) IsGroup() bool {
	return len(n.Children) > 0
}

// Width returns the raster width, or 0 without a raster.
func (n *LayerNode) Width() int {
	if n.Raster == nil {
		return 0
	}
	return n.Raster.Bounds().Dx()
}

// Height returns the raster height, or 0 without a raster.
func (n *LayerNode) Height() int {
	if n.Raster == nil {
		return 0
	}
	return n.Raster.Bounds().Dy()
}

// HasContent returns true if the node carries a raster with a positive area.
func (n *LayerNode) HasContent() bool {
	return n.Width() > 0 && n.Height() > 0
}

// Document is a decoded layered image.
type Document struct {
	// Name is the source file name the document was loaded from.
	Name string

	// Width and Height are the canvas extents.
	Width  int
	Height int

	// Layers holds the top-level nodes in stored order.
	Layers []*LayerNode
}

// BaseName returns the file name without directory and extension.
func (d *Document) BaseName() string {
	base := filepath.Base(d.Name)
	if base == "." || base == string(filepath.Separator) {
		return "document"
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Bounds returns the canvas rectangle anchored at the origin.
func (d *Document) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}
