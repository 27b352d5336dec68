package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// session is everything derived from one loaded document.
// It is replaced wholesale on every successful load.
type session struct {
	doc       *domain.Document
	entries   []domain.FlatEntry
	selection domain.Selection
}

// SessionService drives loading, selection and export of one document at a time.
// Work is sequential; the mutex only guards against callers on other goroutines.
type SessionService struct {
	decoder    driven.Decoder
	encoder    driven.ImageEncoder
	packager   driven.Packager
	saver      driven.Saver
	settings   driving.SettingsService
	history    driven.HistoryStore
	compositor *Compositor

	mu        sync.Mutex
	current   *session
	exporting bool
}

// NewSessionService creates a session service.
// history may be nil, in which case exports are not recorded.
func NewSessionService(
	decoder driven.Decoder,
	encoder driven.ImageEncoder,
	packager driven.Packager,
	saver driven.Saver,
	settings driving.SettingsService,
	history driven.HistoryStore,
) *SessionService {
	return &SessionService{
		decoder:    decoder,
		encoder:    encoder,
		packager:   packager,
		saver:      saver,
		settings:   settings,
		history:    history,
		compositor: NewCompositor(),
	}
}

// Load decodes a document and replaces the session.
func (s *SessionService) Load(ctx context.Context, name string, r io.Reader) error {
	if s.isExporting() {
		return domain.ErrExportInProgress
	}
	if !s.decoder.Accepts(name) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedInput, filepath.Base(name))
	}

	doc, err := s.decoder.Decode(ctx, name, r)
	if err != nil {
		if errors.Is(err, domain.ErrDecodeFailure) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: decoder returned no document", domain.ErrDecodeFailure)
	}

	entries := Flatten(doc)
	logger.Debug("loaded %s: %dx%d, %d entries, %d layers",
		doc.Name, doc.Width, doc.Height, len(entries), domain.CountLeaves(entries))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return domain.ErrExportInProgress
	}
	s.current = &session{doc: doc, entries: entries}
	return nil
}

// Document returns the loaded document, or nil.
func (s *SessionService) Document() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.doc
}

// Entries returns the flattened layer list of the loaded document.
func (s *SessionService) Entries() []domain.FlatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return append([]domain.FlatEntry(nil), s.current.entries...)
}

// State returns the current lifecycle state.
func (s *SessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.exporting:
		return domain.StateExporting
	case s.current != nil:
		return domain.StateLoaded
	default:
		return domain.StateEmpty
	}
}

// Toggle flips the selection of entry i and reports whether it is now selected.
func (s *SessionService) Toggle(i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkSelectable(i); err != nil {
		return false, err
	}
	return s.current.selection.Toggle(i), nil
}

// Select adds entry i to the selection.
func (s *SessionService) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkSelectable(i); err != nil {
		return err
	}
	s.current.selection.Add(i)
	return nil
}

// Deselect removes entry i from the selection.
func (s *SessionService) Deselect(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkSelectable(i); err != nil {
		return err
	}
	s.current.selection.Remove(i)
	return nil
}

// SelectOrdinals adds the leaves with the given ordinals to the selection.
// Either every ordinal resolves or the selection is left unchanged.
func (s *SessionService) SelectOrdinals(ordinals []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.ErrNoDocument
	}

	byOrdinal := make(map[int]int, len(s.current.entries))
	for i, e := range s.current.entries {
		if e.Selectable() {
			byOrdinal[e.Ordinal] = i
		}
	}

	indices := make([]int, 0, len(ordinals))
	for _, n := range ordinals {
		idx, ok := byOrdinal[n]
		if !ok {
			return fmt.Errorf("%w: no layer numbered %d", domain.ErrNotFound, n)
		}
		indices = append(indices, idx)
	}
	for _, idx := range indices {
		s.current.selection.Add(idx)
	}
	return nil
}

// SelectAll selects every leaf entry.
func (s *SessionService) SelectAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.ErrNoDocument
	}
	for i, e := range s.current.entries {
		if e.Selectable() {
			s.current.selection.Add(i)
		}
	}
	return nil
}

// DeselectAll clears the selection.
func (s *SessionService) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.selection.Clear()
	}
}

// Selection returns the selected flat indices in ascending order.
func (s *SessionService) Selection() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.selection.Indices()
}

// Manifest renders the layer list text of the loaded document.
func (s *SessionService) Manifest() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", domain.ErrNoDocument
	}
	return WriteManifest(s.current.doc, s.current.entries), nil
}

// Preview renders entry i on its own, scaled down to the configured preview size.
func (s *SessionService) Preview(ctx context.Context, i int, placement domain.Placement) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if err := s.checkSelectable(i); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	doc, entry := s.current.doc, s.current.entries[i]
	s.mu.Unlock()

	img, err := s.compositor.RenderLayer(doc, entry, placement)
	if err != nil {
		return nil, err
	}
	return s.compositor.Thumbnail(img, s.loadSettings().Preview.MaxSize), nil
}

// Export runs an export over a snapshot of the current selection.
// Selection edits made while the export runs do not affect it.
func (s *SessionService) Export(
	ctx context.Context,
	req domain.ExportRequest,
	progress domain.ProgressFunc,
) (*domain.ExportResult, error) {
	if !req.Mode.IsValid() {
		return nil, fmt.Errorf("%w: export mode %q", domain.ErrInvalidInput, req.Mode)
	}

	settings := s.loadSettings()
	format := req.Format
	if format == "" {
		format = settings.Export.Format
	}
	if !domain.IsValidFormat(format) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	outDir := req.OutputDir
	if outDir == "" {
		outDir = settings.Export.OutputDir
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoDocument
	}
	if s.exporting {
		s.mu.Unlock()
		return nil, domain.ErrExportInProgress
	}
	doc := s.current.doc
	entries := s.current.entries
	indices := s.current.selection.Indices()
	s.exporting = true
	s.mu.Unlock()

	logger.Section("Export")
	logger.Debug("Document: %s, mode: %s, layers: %d, format: %s, output: %s",
		doc.Name, req.Mode, len(indices), format, outDir)

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	run := &exportRun{
		svc:      s,
		doc:      doc,
		entries:  entries,
		indices:  indices,
		format:   format,
		outDir:   outDir,
		progress: progress,
		result: &domain.ExportResult{
			ID:        uuid.New().String(),
			Mode:      req.Mode,
			Document:  doc.Name,
			StartedAt: time.Now(),
		},
	}

	var err error
	switch req.Mode {
	case domain.ExportIndividual:
		err = run.individual(ctx, req.Placement, settings.Export.SingleFileDirect)
	case domain.ExportMerged:
		err = run.merged(ctx)
	case domain.ExportList:
		err = run.list(ctx)
	}
	if err != nil {
		return nil, err
	}

	run.result.FinishedAt = time.Now()
	if settings.History.Enabled {
		s.record(ctx, run.result)
	}
	return run.result, nil
}

// record writes a history row. Failures are logged, never returned.
func (s *SessionService) record(ctx context.Context, result *domain.ExportResult) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, domain.NewExportRecord(result)); err != nil {
		logger.Warn("record export history: %v", err)
	}
}

func (s *SessionService) isExporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporting
}

// checkSelectable must be called with s.mu held.
func (s *SessionService) checkSelectable(i int) error {
	if s.current == nil {
		return domain.ErrNoDocument
	}
	if i < 0 || i >= len(s.current.entries) {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, i)
	}
	if !s.current.entries[i].Selectable() {
		return fmt.Errorf("%w: %q is a group", domain.ErrNotSelectable, s.current.entries[i].DisplayName)
	}
	return nil
}

func (s *SessionService) loadSettings() domain.Settings {
	if s.settings == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		logger.Warn("load settings, using defaults: %v", err)
		return domain.DefaultSettings()
	}
	return *settings
}

// exportRun carries the snapshot and output of one export.
type exportRun struct {
	svc      *SessionService
	doc      *domain.Document
	entries  []domain.FlatEntry
	indices  []int
	format   string
	outDir   string
	progress domain.ProgressFunc
	result   *domain.ExportResult
}

func (r *exportRun) individual(ctx context.Context, placement domain.Placement, singleDirect bool) error {
	if len(r.indices) == 0 {
		return domain.ErrEmptySelection
	}

	batch, err := r.svc.compositor.RenderEach(ctx, r.doc, r.entries, r.indices, placement, r.progress)
	if err != nil {
		return err
	}
	r.result.Failures = append(r.result.Failures, batch.Failures()...)

	ext := r.svc.encoder.Extension(r.format)
	artifacts := make([]domain.Artifact, 0, len(batch.Items))
	for _, item := range batch.Succeeded() {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := r.svc.encoder.Encode(ctx, item.Image, r.format)
		if err != nil {
			logger.Warn("encode %s: %v", item.Entry.DisplayName, err)
			r.result.Failures = append(r.result.Failures, domain.ItemFailure{
				Index:  item.Index,
				Name:   item.Entry.DisplayName,
				Reason: fmt.Errorf("%w: %w", domain.ErrRenderFailure, err).Error(),
			})
			continue
		}
		artifacts = append(artifacts, domain.Artifact{
			Name: LayerFilename(item.Entry, ext),
			Data: data,
		})
	}

	r.progress.Report(100, statusPackaging)

	switch {
	case len(artifacts) == 0:
		logger.Warn("no layers exported from %s", r.doc.Name)
		return nil
	case len(artifacts) == 1 && singleDirect:
		return r.save(ctx, artifacts[0].Name, artifacts[0].Data, artifacts[0].Name)
	}

	archive, err := r.svc.packager.Package(ctx, artifacts)
	if err != nil {
		return fmt.Errorf("%w: package archive: %w", domain.ErrEncodeOrSave, err)
	}
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	return r.save(ctx, ArchiveFilename(r.doc), archive, names...)
}

func (r *exportRun) merged(ctx context.Context) error {
	if len(r.indices) == 0 {
		return domain.ErrEmptySelection
	}

	canvas, batch, err := r.svc.compositor.Merge(ctx, r.doc, r.entries, r.indices, r.progress)
	if err != nil {
		return err
	}
	r.result.Failures = append(r.result.Failures, batch.Failures()...)

	r.progress.Report(100, statusSaving)

	data, err := r.svc.encoder.Encode(ctx, canvas, r.format)
	if err != nil {
		return fmt.Errorf("%w: encode composite: %w", domain.ErrEncodeOrSave, err)
	}
	name := MergedFilename(r.doc, r.svc.encoder.Extension(r.format))
	return r.save(ctx, name, data, name)
}

func (r *exportRun) list(ctx context.Context) error {
	r.progress.Report(100, statusSaving)

	name := ManifestFilename(r.doc)
	text := WriteManifest(r.doc, r.entries)
	return r.save(ctx, name, []byte(text), name)
}

// save writes one artifact to the output directory and records the files it holds.
func (r *exportRun) save(ctx context.Context, name string, data []byte, files ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	location, err := r.svc.saver.Save(ctx, filepath.Join(r.outDir, name), data)
	if err != nil {
		return fmt.Errorf("%w: save %s: %w", domain.ErrEncodeOrSave, name, err)
	}
	logger.Info("saved %s", location)
	r.result.Saved = append(r.result.Saved, location)
	r.result.Files = append(r.result.Files, files...)
	return nil
}
