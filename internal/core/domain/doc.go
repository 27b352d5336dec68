// Package domain defines the core entities for layerex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A decoded layered image with its canvas size
//   - LayerNode: One node of the decoded layer tree (group or leaf)
//   - FlatEntry: A flattened, numbered row of the layer list
//   - Selection: The set of flat entries chosen for export
//   - ExportResult: The artifacts produced by one export run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
