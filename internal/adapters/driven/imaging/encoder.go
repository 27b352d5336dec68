// Package imaging encodes rasters into image files.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
)

// Ensure Encoder implements the interface.
var _ driven.ImageEncoder = (*Encoder)(nil)

// Encoder writes PNG, BMP and TIFF files.
type Encoder struct {
	png png.Encoder
}

// NewEncoder creates an encoder. PNGs use best compression.
func NewEncoder() *Encoder {
	return &Encoder{png: png.Encoder{CompressionLevel: png.BestCompression}}
}

// Encode serialises img in the given format.
func (e *Encoder) Encode(ctx context.Context, img image.Image, format string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case domain.FormatPNG:
		err = e.png.Encode(&buf, img)
	case domain.FormatBMP:
		err = bmp.Encode(&buf, img)
	case domain.FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for the format.
// Unknown formats map to themselves.
func (e *Encoder) Extension(format string) string {
	if format == domain.FormatTIFF {
		return "tif"
	}
	return format
}
