package services

import (
	"context"
	"fmt"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads and clears the export history.
type HistoryService struct {
	store    driven.HistoryStore
	settings driving.SettingsService
}

// NewHistoryService creates a history service.
// store may be nil, in which case the history is always empty.
func NewHistoryService(store driven.HistoryStore, settings driving.SettingsService) *HistoryService {
	return &HistoryService{store: store, settings: settings}
}

// List returns records newest first.
func (h *HistoryService) List(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if h.store == nil {
		return nil, nil
	}
	records, err := h.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Clear deletes the history.
func (h *HistoryService) Clear(ctx context.Context) error {
	if h.store == nil {
		return nil
	}
	if err := h.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Enabled reports whether a store is configured and recording is switched on.
func (h *HistoryService) Enabled() bool {
	if h.store == nil {
		return false
	}
	if h.settings == nil {
		return true
	}
	settings, err := h.settings.Get()
	if err != nil {
		return false
	}
	return settings.History.Enabled
}
