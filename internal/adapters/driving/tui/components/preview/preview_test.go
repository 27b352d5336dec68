package preview

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name             string
		w, h             int
		maxCols, maxRows int
		cols, rows       int
	}{
		{"small image keeps size", 10, 10, 80, 40, 10, 5},
		{"wide image bound by columns", 200, 100, 40, 40, 40, 10},
		{"tall image bound by rows", 100, 400, 80, 10, 5, 10},
		{"odd pixel rows round up", 4, 3, 80, 40, 4, 2},
		{"empty image", 0, 10, 80, 40, 0, 0},
		{"no room", 10, 10, 0, 40, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := Fit(tt.w, tt.h, tt.maxCols, tt.maxRows)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.rows, rows)
		})
	}
}

func TestRender_Dimensions(t *testing.T) {
	out := Render(solid(8, 6, color.NRGBA{R: 255, A: 255}), 80, 40)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 8, strings.Count(line, upperHalf))
	}
}

func TestRender_TransparentIsBlank(t *testing.T) {
	out := Render(solid(4, 2, color.NRGBA{}), 80, 40)

	assert.Equal(t, "    ", out)
}

func TestRender_Nil(t *testing.T) {
	assert.Empty(t, Render(nil, 80, 40))
}
