package driven

import (
	"context"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// Packager bundles many artifacts into a single archive.
type Packager interface {
	// Package returns the archive bytes. Artifact order is preserved.
	Package(ctx context.Context, artifacts []domain.Artifact) ([]byte, error)
}
