package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/adapters/driven/storage/memory"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// failingHistoryStore fails every call.
type failingHistoryStore struct{}

func (failingHistoryStore) Record(context.Context, domain.ExportRecord) error {
	return errors.New("db locked")
}

func (failingHistoryStore) List(context.Context, int) ([]domain.ExportRecord, error) {
	return nil, errors.New("db locked")
}

func (failingHistoryStore) Clear(context.Context) error {
	return errors.New("db locked")
}

func TestHistoryService_ListAndClear(t *testing.T) {
	store := memory.NewHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, domain.ExportRecord{ID: "a"}))
	require.NoError(t, store.Record(ctx, domain.ExportRecord{ID: "b"}))

	svc := NewHistoryService(store, NewSettingsService(memory.NewConfigStore()))

	records, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, svc.Clear(ctx))
	records, err = svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryService_NilStore(t *testing.T) {
	svc := NewHistoryService(nil, nil)

	records, err := svc.List(context.Background(), 10)
	assert.NoError(t, err)
	assert.Nil(t, records)
	assert.NoError(t, svc.Clear(context.Background()))
	assert.False(t, svc.Enabled())
}

func TestHistoryService_Enabled(t *testing.T) {
	config := memory.NewConfigStore()
	svc := NewHistoryService(memory.NewHistoryStore(), NewSettingsService(config))

	assert.True(t, svc.Enabled())

	require.NoError(t, config.Set(domain.SettingHistoryEnabled, false))
	assert.False(t, svc.Enabled())
}

func TestHistoryService_StoreErrorsAreWrapped(t *testing.T) {
	svc := NewHistoryService(failingHistoryStore{}, nil)

	_, err := svc.List(context.Background(), 0)
	assert.ErrorContains(t, err, "list history")

	err = svc.Clear(context.Background())
	assert.ErrorContains(t, err, "clear history")
}

func TestSessionService_HistoryFailureDoesNotFailExport(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.history = failingHistoryStore{}
	f.load(t)

	result, err := f.svc.Export(context.Background(), domain.ExportRequest{Mode: domain.ExportList}, nil)

	require.NoError(t, err)
	assert.Len(t, result.Saved, 1)
}
