package services

import (
	"context"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"sync"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

// solid returns an opaque raster covering r, in document coordinates.
func solid(r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// leaf returns a layer of size w x h at (left, top).
func leaf(name string, left, top, w, h int, c color.NRGBA) *domain.LayerNode {
	return &domain.LayerNode{
		Name:   name,
		Raster: solid(image.Rect(left, top, left+w, top+h), c),
		Left:   left,
		Top:    top,
	}
}

func group(name string, children ...*domain.LayerNode) *domain.LayerNode {
	return &domain.LayerNode{Name: name, Children: children}
}

func empty(name string) *domain.LayerNode {
	return &domain.LayerNode{Name: name}
}

// brokenImage panics on pixel access.
type brokenImage struct {
	rect image.Rectangle
}

func (b brokenImage) ColorModel() color.Model { return color.NRGBAModel }
func (b brokenImage) Bounds() image.Rectangle { return b.rect }
func (b brokenImage) At(int, int) color.Color { panic("corrupt channel data") }

// sampleDocument is a 10x10 canvas with stored order
// [Background, Characters[Shadow, Hero], empty, Overlay].
// Flattened:
//
//	0 Overlay      #1
//	1 Characters   group
//	2   Hero       #2
//	3   Shadow     #3
//	4 Background   #4
func sampleDocument() *domain.Document {
	return &domain.Document{
		Name:   "/art/poster.psd",
		Width:  10,
		Height: 10,
		Layers: []*domain.LayerNode{
			leaf("Background", 0, 0, 10, 10, blue),
			group("Characters",
				leaf("Shadow", 2, 2, 3, 3, green),
				leaf("Hero", 4, 4, 2, 2, red),
			),
			empty("Adjustment"),
			leaf("Overlay", 8, 8, 4, 4, green),
		},
	}
}

// stubDecoder returns a fixed document or error.
type stubDecoder struct {
	doc  *domain.Document
	err  error
	exts []string

	calls int
}

func (d *stubDecoder) Accepts(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range d.exts {
		if e == ext {
			return true
		}
	}
	return false
}

func (d *stubDecoder) Decode(_ context.Context, name string, _ io.Reader) (*domain.Document, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	doc := *d.doc
	doc.Name = name
	return &doc, nil
}

// stubEncoder writes the image bounds as its bytes and can fail on demand.
type stubEncoder struct {
	failFor map[int]bool // by image width
	err     error
}

func (e *stubEncoder) Encode(_ context.Context, img image.Image, format string) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.failFor[img.Bounds().Dx()] {
		return nil, io.ErrShortWrite
	}
	return []byte(format + ":" + img.Bounds().String()), nil
}

func (e *stubEncoder) Extension(format string) string {
	return format
}

// stubPackager records what it was asked to package.
type stubPackager struct {
	got []domain.Artifact
	err error
}

func (p *stubPackager) Package(_ context.Context, artifacts []domain.Artifact) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.got = append([]domain.Artifact(nil), artifacts...)
	return []byte("zip"), nil
}

// memorySaver keeps saved blobs by name.
type memorySaver struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemorySaver() *memorySaver {
	return &memorySaver{files: make(map[string][]byte)}
}

func (s *memorySaver) Save(_ context.Context, name string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	return name, nil
}

func (s *memorySaver) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for name := range s.files {
		out = append(out, name)
	}
	return out
}
