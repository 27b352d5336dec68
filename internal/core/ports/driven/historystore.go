package driven

import (
	"context"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// HistoryStore persists export records.
type HistoryStore interface {
	// Record stores one export record.
	Record(ctx context.Context, rec domain.ExportRecord) error

	// List returns records newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.ExportRecord, error)

	// Clear deletes every record.
	Clear(ctx context.Context) error
}
