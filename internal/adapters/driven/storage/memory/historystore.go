package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.ExportRecord
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record stores one export record, replacing any with the same ID.
func (s *HistoryStore) Record(_ context.Context, rec domain.ExportRecord) error {
	if rec.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Saved = append([]string(nil), rec.Saved...)
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return nil
		}
	}
	s.records = append(s.records, rec)
	return nil
}

// List returns records newest first. A limit <= 0 returns all.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ExportRecord, len(s.records))
	copy(out, s.records)
	// Insertion order breaks ties, newest insert first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear deletes every record.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
