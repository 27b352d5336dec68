// Package archive bundles export artifacts into zip archives.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
)

// Ensure ZipPackager implements the interface.
var _ driven.Packager = (*ZipPackager)(nil)

// ZipPackager writes artifacts into a deflate-compressed zip archive.
type ZipPackager struct {
	now func() time.Time
}

// NewZipPackager creates a zip packager.
func NewZipPackager() *ZipPackager {
	return &ZipPackager{now: time.Now}
}

// Package returns the archive bytes. Member names are stored as UTF-8.
// Duplicate names are rejected.
func (p *ZipPackager) Package(ctx context.Context, artifacts []domain.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := p.now()
	seen := make(map[string]struct{}, len(artifacts))

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate archive member %q", domain.ErrInvalidInput, a.Name)
		}
		seen[a.Name] = struct{}{}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     a.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create member %s: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("write member %s: %w", a.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish archive: %w", err)
	}
	return buf.Bytes(), nil
}
