package driven

import (
	"context"
	"image"
)

// ImageEncoder encodes rasters into image files.
type ImageEncoder interface {
	// Encode serialises img in the given format (png, bmp, tiff).
	// Returns an error wrapping domain.ErrUnsupportedFormat for unknown formats.
	Encode(ctx context.Context, img image.Image, format string) ([]byte, error)

	// Extension returns the file extension for the format, without the dot.
	Extension(format string) string
}
