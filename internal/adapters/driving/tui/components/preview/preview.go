// Package preview draws images as terminal text using half-block cells.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

// upperHalf colours the top pixel with the foreground and the bottom
// pixel with the background.
const upperHalf = "▀"

// alphaCutoff is the alpha below which a pixel is drawn as terminal background.
const alphaCutoff = 0x40

// Fit returns the cell size for drawing a w x h image within maxCols
// columns and maxRows text rows. Each row holds two pixel rows.
func Fit(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}

	cols = min(w, maxCols)
	pixelRows := h * cols / w
	if pixelRows > maxRows*2 {
		pixelRows = maxRows * 2
		cols = max(1, w*pixelRows/h)
	}
	rows = max(1, (pixelRows+1)/2)
	return cols, rows
}

// Render draws img scaled into at most maxCols x maxRows cells.
func Render(img image.Image, maxCols, maxRows int) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	cols, rows := Fit(b.Dx(), b.Dy(), maxCols, maxRows)
	if cols == 0 {
		return ""
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			sb.WriteString(cell(scaled.NRGBAAt(x, 2*y), scaled.NRGBAAt(x, 2*y+1)))
		}
	}
	return sb.String()
}

func cell(top, bottom color.NRGBA) string {
	topOn := top.A >= alphaCutoff
	bottomOn := bottom.A >= alphaCutoff

	switch {
	case topOn && bottomOn:
		return lipgloss.NewStyle().
			Foreground(hex(top)).
			Background(hex(bottom)).
			Render(upperHalf)
	case topOn:
		return lipgloss.NewStyle().Foreground(hex(top)).Render(upperHalf)
	case bottomOn:
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render("▄")
	default:
		return " "
	}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
