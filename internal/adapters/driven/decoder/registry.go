// Package decoder selects a layered-image decoder for a file.
package decoder

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.Decoder = (*Registry)(nil)

// Registry dispatches to the first registered decoder that accepts a file.
type Registry struct {
	decoders []driven.Decoder
}

// NewRegistry creates a registry holding the given decoders, in priority order.
func NewRegistry(decoders ...driven.Decoder) *Registry {
	return &Registry{decoders: decoders}
}

// Accepts returns true if any registered decoder accepts the file.
func (r *Registry) Accepts(name string) bool {
	return r.find(name) != nil
}

// Decode decodes the file with the first decoder that accepts it.
func (r *Registry) Decode(ctx context.Context, name string, rd io.Reader) (*domain.Document, error) {
	d := r.find(name)
	if d == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInput, filepath.Base(name))
	}
	return d.Decode(ctx, name, rd)
}

func (r *Registry) find(name string) driven.Decoder {
	for _, d := range r.decoders {
		if d.Accepts(name) {
			return d
		}
	}
	return nil
}
