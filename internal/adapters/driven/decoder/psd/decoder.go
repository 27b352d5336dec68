// Package psd decodes Photoshop PSD and PSB documents into layer trees
// using github.com/oov/psd.
package psd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/oov/psd"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// MaxSide is the largest canvas side a PSB may declare.
const MaxSide = 300000

// Extensions handled by the decoder.
var Extensions = []string{".psd", ".psb"}

// Decoder decodes PSD and PSB files.
type Decoder struct {
	maxSide int
}

// New creates a decoder.
func New() *Decoder {
	return &Decoder{maxSide: MaxSide}
}

// Accepts reports whether the file has a .psd or .psb extension.
func (d *Decoder) Accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode reads a document, skipping the flattened preview image.
func (d *Decoder) Decode(ctx context.Context, name string, r io.Reader) (doc *domain.Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("%w: %s: %v", domain.ErrDecodeFailure, filepath.Base(name), rec)
		}
	}()

	img, _, err := psd.Decode(r, &psd.DecodeOptions{
		SkipMergedImage: true,
		ConfigLoaded: func(cfg psd.Config) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, h := cfg.Rect.Dx(), cfg.Rect.Dy()
			if w <= 0 || h <= 0 || w > d.maxSide || h > d.maxSide {
				return fmt.Errorf("canvas %dx%d out of range", w, h)
			}
			return nil
		},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDecodeFailure, filepath.Base(name), err)
	}

	doc = &domain.Document{
		Name:   name,
		Width:  img.Config.Rect.Dx(),
		Height: img.Config.Rect.Dy(),
		Layers: convertLayers(img.Layer),
	}
	logger.Debug("psd %s: %dx%d, %d top-level layers", filepath.Base(name), doc.Width, doc.Height, len(doc.Layers))
	return doc, nil
}

// convertLayers maps decoded layers to nodes, keeping stored order.
func convertLayers(layers []psd.Layer) []*domain.LayerNode {
	nodes := make([]*domain.LayerNode, 0, len(layers))
	for i := range layers {
		nodes = append(nodes, convertLayer(&layers[i]))
	}
	return nodes
}

func convertLayer(l *psd.Layer) *domain.LayerNode {
	name := l.UnicodeName
	if name == "" {
		name = l.Name
	}
	node := &domain.LayerNode{
		Name:   name,
		Left:   l.Rect.Min.X,
		Top:    l.Rect.Min.Y,
		Hidden: !l.Visible(),
	}

	if l.Folder() || len(l.Layer) > 0 {
		node.Children = convertLayers(l.Layer)
		return node
	}
	if l.HasImage() && l.Picker != nil {
		node.Raster = l.Picker
	}
	return node
}
