package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Record stores one export record. Recording the same ID twice replaces it.
func (h *historyStore) Record(ctx context.Context, rec domain.ExportRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: record has no id", domain.ErrInvalidInput)
	}

	saved, err := json.Marshal(rec.Saved)
	if err != nil {
		return fmt.Errorf("marshalling saved locations: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = h.store.db.ExecContext(ctx, `
		INSERT INTO export_history (id, document, mode, file_count, failure_count, saved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			mode = excluded.mode,
			file_count = excluded.file_count,
			failure_count = excluded.failure_count,
			saved = excluded.saved,
			created_at = excluded.created_at
	`, rec.ID, rec.Document, string(rec.Mode), rec.FileCount, rec.FailureCount,
		string(saved), createdAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// List returns records newest first. A limit <= 0 returns all.
func (h *historyStore) List(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, document, mode, file_count, failure_count, saved, created_at
		FROM export_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying export history: %w", err)
	}
	defer rows.Close()

	var records []domain.ExportRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanExportRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export history: %w", err)
	}

	return records, nil
}

// Clear deletes every record.
func (h *historyStore) Clear(ctx context.Context) error {
	if _, err := h.store.db.ExecContext(ctx, "DELETE FROM export_history"); err != nil {
		return fmt.Errorf("clearing export history: %w", err)
	}
	return nil
}

func scanExportRecord(rows *sql.Rows) (*domain.ExportRecord, error) {
	var (
		rec       domain.ExportRecord
		mode      string
		saved     sql.NullString
		createdAt string
	)
	if err := rows.Scan(&rec.ID, &rec.Document, &mode, &rec.FileCount, &rec.FailureCount, &saved, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning export record: %w", err)
	}

	rec.Mode = domain.ExportMode(mode)
	if saved.Valid && saved.String != "" {
		if err := json.Unmarshal([]byte(saved.String), &rec.Saved); err != nil {
			return nil, fmt.Errorf("unmarshalling saved locations: %w", err)
		}
	}
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		rec.CreatedAt = t
	}

	return &rec, nil
}
