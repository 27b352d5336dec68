// Package testenv wires core services to in-memory adapters for tests of
// the driving adapters.
package testenv

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ambrosestarlit/layerex/internal/adapters/driven/archive"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/imaging"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/output"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/storage/memory"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
	"github.com/ambrosestarlit/layerex/internal/core/services"
)

// BrokenContent makes Decoder fail with domain.ErrDecodeFailure.
const BrokenContent = "broken"

// Decoder accepts .psd files and returns a fixed document whose
// flattened list is:
//
//	0 001 Overlay
//	1 ▸ Characters
//	2     002 Hero
//	3     003 Shadow (hidden)
//	4 004 Background
type Decoder struct{}

// Accepts reports whether name has a .psd extension.
func (Decoder) Accepts(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".psd")
}

// Decode returns the fixed document, or fails for BrokenContent.
func (Decoder) Decode(_ context.Context, name string, r io.Reader) (*domain.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if string(data) == BrokenContent {
		return nil, fmt.Errorf("%w: bad signature", domain.ErrDecodeFailure)
	}
	return Document(name), nil
}

// Document returns the fixed 8x6 document.
func Document(name string) *domain.Document {
	return &domain.Document{
		Name:   name,
		Width:  8,
		Height: 6,
		Layers: []*domain.LayerNode{
			{Name: "Background", Raster: Solid(8, 6, color.NRGBA{B: 255, A: 255})},
			{Name: "Characters", Children: []*domain.LayerNode{
				{Name: "Shadow", Raster: Solid(2, 2, color.NRGBA{A: 128}), Left: 1, Top: 3, Hidden: true},
				{Name: "Hero", Raster: Solid(3, 3, color.NRGBA{R: 255, A: 255}), Left: 2, Top: 1},
			}},
			{Name: "Overlay", Raster: Solid(8, 2, color.NRGBA{G: 255, A: 255})},
		},
	}
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// Env holds services backed by memory stores and a temporary directory.
type Env struct {
	// Dir is a temporary directory for input files.
	Dir string

	// OutDir is the configured export directory.
	OutDir string

	Session  driving.SessionService
	Settings driving.SettingsService
	History  driving.HistoryService

	// NewSession creates another session sharing the settings and history.
	NewSession func() driving.SessionService
}

// New builds an Env whose output directory lives under t.TempDir.
func New(t testing.TB) *Env {
	t.Helper()

	dir := t.TempDir()
	env := &Env{Dir: dir, OutDir: filepath.Join(dir, "out")}

	settings := services.NewSettingsService(memory.NewConfigStore())
	if err := settings.SetOutputDir(env.OutDir); err != nil {
		t.Fatalf("set output dir: %v", err)
	}
	historyStore := memory.NewHistoryStore()

	env.NewSession = func() driving.SessionService {
		return services.NewSessionService(
			Decoder{},
			imaging.NewEncoder(),
			archive.NewZipPackager(),
			output.NewDirSaver(""),
			settings,
			historyStore,
		)
	}
	env.Session = env.NewSession()
	env.Settings = settings
	env.History = services.NewHistoryService(historyStore, settings)
	return env
}

// WriteFile writes content to name inside Dir and returns the path.
func (e *Env) WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Load loads the fixed document into Session under name.
func (e *Env) Load(t testing.TB, name string) {
	t.Helper()
	if err := e.Session.Load(context.Background(), name, strings.NewReader("ok")); err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
}
