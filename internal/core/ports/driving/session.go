package driving

import (
	"context"
	"image"
	"io"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// SessionService owns the loaded document, its flattened layer list and
// the current selection.
type SessionService interface {
	// Load decodes a document and replaces the session.
	// On failure the previous session is left untouched.
	Load(ctx context.Context, name string, r io.Reader) error

	// Document returns the loaded document, or nil.
	Document() *domain.Document

	// Entries returns the flattened layer list of the loaded document.
	Entries() []domain.FlatEntry

	// State returns the current lifecycle state.
	State() domain.SessionState

	// Toggle flips the selection of entry i and reports the new state.
	Toggle(i int) (bool, error)

	// Select adds entry i to the selection.
	Select(i int) error

	// Deselect removes entry i from the selection.
	Deselect(i int) error

	// SelectOrdinals selects the leaves with the given 1-based ordinals.
	SelectOrdinals(ordinals []int) error

	// SelectAll selects every leaf entry.
	SelectAll() error

	// DeselectAll clears the selection.
	DeselectAll()

	// Selection returns the selected flat indices in ascending order.
	Selection() []int

	// Manifest renders the layer list text of the loaded document.
	Manifest() (string, error)

	// Preview renders entry i on its own.
	Preview(ctx context.Context, i int, placement domain.Placement) (image.Image, error)

	// Export runs an export over the current selection.
	Export(ctx context.Context, req domain.ExportRequest, progress domain.ProgressFunc) (*domain.ExportResult, error)
}
