package driven

import (
	"context"
	"io"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// Decoder turns a layered image file into a layer tree.
// The core never parses file formats itself.
type Decoder interface {
	// Accepts reports whether the decoder handles the named file.
	// Implementations decide by file extension.
	Accepts(name string) bool

	// Decode reads the whole document from r.
	// Returns an error wrapping domain.ErrDecodeFailure if the bytes are invalid.
	Decode(ctx context.Context, name string, r io.Reader) (*domain.Document, error)
}
