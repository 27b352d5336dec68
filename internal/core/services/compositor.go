package services

import (
	"context"
	"fmt"
	"image"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// Progress status messages.
const (
	statusExporting   = "%d/%d Exporting layers..."
	statusCompositing = "%d/%d Compositing layers..."
	statusPackaging   = "Packaging archive..."
	statusSaving      = "Saving..."
)

// Compositor renders layer rasters onto canvases.
// It holds no state and is safe for concurrent use.
type Compositor struct{}

// NewCompositor creates a compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// RenderLayer renders one leaf entry on its own.
//
// With PlacementFullCanvas the result has the document's size and the
// layer sits at its stored offset; parts outside the canvas are clipped.
// With PlacementNative the result has the layer's own size.
// Groups, missing rasters and rasters that panic while being read all
// yield an error wrapping domain.ErrRenderFailure.
func (c *Compositor) RenderLayer(doc *domain.Document, entry domain.FlatEntry, placement domain.Placement) (img image.Image, err error) {
	if entry.IsGroup || entry.Source == nil {
		return nil, fmt.Errorf("%w: %q is a group", domain.ErrRenderFailure, entry.DisplayName)
	}
	node := entry.Source
	if !node.HasContent() {
		return nil, fmt.Errorf("%w: %q has no pixel data", domain.ErrRenderFailure, entry.DisplayName)
	}

	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("%w: %q: %v", domain.ErrRenderFailure, entry.DisplayName, r)
		}
	}()

	src := node.Raster
	if placement == domain.PlacementNative {
		dst := image.NewRGBA(image.Rect(0, 0, node.Width(), node.Height()))
		xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Over, nil)
		return dst, nil
	}

	dst := image.NewRGBA(doc.Bounds())
	xdraw.Copy(dst, image.Pt(node.Left, node.Top), src, src.Bounds(), xdraw.Over, nil)
	return dst, nil
}

// RenderEach renders the entries at the given flat indices one by one.
//
// Progress is reported before each unit. A failing entry is recorded in
// the batch and the run continues. Cancellation is checked between units.
func (c *Compositor) RenderEach(
	ctx context.Context,
	doc *domain.Document,
	entries []domain.FlatEntry,
	indices []int,
	placement domain.Placement,
	progress domain.ProgressFunc,
) (*domain.RenderBatch, error) {
	batch := &domain.RenderBatch{Items: make([]domain.RenderItem, 0, len(indices))}
	total := len(indices)

	for i, idx := range indices {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		progress.Report(percentOf(i, total), fmt.Sprintf(statusExporting, i+1, total))

		item := domain.RenderItem{Index: idx}
		if idx < 0 || idx >= len(entries) {
			item.Err = fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, idx)
			batch.Items = append(batch.Items, item)
			continue
		}
		item.Entry = entries[idx]
		item.Image, item.Err = c.RenderLayer(doc, item.Entry, placement)
		if item.Err != nil {
			logger.Warn("render %s: %v", item.Entry.DisplayName, item.Err)
		}
		batch.Items = append(batch.Items, item)
	}

	return batch, nil
}

// Merge composites the entries at the given flat indices into one
// document-size image.
//
// Entries are drawn in descending ordinal order, so the bottom-most layer
// of the selection is painted first and the top-most last. Each layer is
// rendered at its native size and drawn source-over at its offset. Failing
// entries are logged, recorded in the batch and skipped.
func (c *Compositor) Merge(
	ctx context.Context,
	doc *domain.Document,
	entries []domain.FlatEntry,
	indices []int,
	progress domain.ProgressFunc,
) (image.Image, *domain.RenderBatch, error) {
	ordered := make([]int, 0, len(indices))
	batch := &domain.RenderBatch{}
	for _, idx := range indices {
		if idx < 0 || idx >= len(entries) {
			batch.Items = append(batch.Items, domain.RenderItem{
				Index: idx,
				Err:   fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, idx),
			})
			continue
		}
		ordered = append(ordered, idx)
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return entries[ordered[a]].Ordinal > entries[ordered[b]].Ordinal
	})

	canvas := image.NewRGBA(doc.Bounds())
	total := len(ordered)

	for i, idx := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, batch, err
		}
		progress.Report(percentOf(i, total), fmt.Sprintf(statusCompositing, i+1, total))

		item := domain.RenderItem{Index: idx, Entry: entries[idx]}
		layer, err := c.RenderLayer(doc, item.Entry, domain.PlacementNative)
		if err != nil {
			logger.Warn("merge %s: %v", item.Entry.DisplayName, err)
			item.Err = err
			batch.Items = append(batch.Items, item)
			continue
		}

		node := item.Entry.Source
		xdraw.Copy(canvas, image.Pt(node.Left, node.Top), layer, layer.Bounds(), xdraw.Over, nil)
		item.Image = layer
		batch.Items = append(batch.Items, item)
	}

	return canvas, batch, nil
}

// Thumbnail scales img down so its longest side is at most maxSide.
// Images already within bounds, and a maxSide <= 0, return img unchanged.
func (c *Compositor) Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	tw, th := maxSide, maxSide
	if w >= h {
		th = max(1, h*maxSide/w)
	} else {
		tw = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func percentOf(done, total int) float64 {
	if total <= 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}
