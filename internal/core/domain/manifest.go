package domain

// Manifest is the parsed form of a layer list text export.
type Manifest struct {
	// Document is the source file name.
	Document string

	// Width and Height are the canvas extents.
	Width  int
	Height int

	// LayerCount is the number of non-group entries stated in the header.
	LayerCount int

	// Entries are the listed rows in order.
	Entries []ManifestEntry
}

// ManifestEntry is one row of a manifest.
type ManifestEntry struct {
	Depth   int
	Ordinal int
	Name    string
	IsGroup bool
}
