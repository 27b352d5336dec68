package driving

import (
	"context"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// HistoryService exposes past export runs.
type HistoryService interface {
	// List returns records newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.ExportRecord, error)

	// Clear deletes the history.
	Clear(ctx context.Context) error

	// Enabled reports whether export runs are being recorded.
	Enabled() bool
}
