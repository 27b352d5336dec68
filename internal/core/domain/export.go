package domain

import (
	"image"
	"time"
)

// ExportMode selects what an export run produces.
type ExportMode string

// Available export modes.
const (
	// ExportIndividual writes one image per selected layer, packaged into an archive.
	ExportIndividual ExportMode = "individual"

	// ExportMerged composites the selected layers into one image.
	ExportMerged ExportMode = "merged"

	// ExportList writes the text manifest of the layer list.
	ExportList ExportMode = "list"
)

// IsValid returns true if the export mode is recognised.
func (m ExportMode) IsValid() bool {
	switch m {
	case ExportIndividual, ExportMerged, ExportList:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ExportMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ExportMode) Description() string {
	switch m {
	case ExportIndividual:
		return "Individual (one image per layer)"
	case ExportMerged:
		return "Merged (single composite)"
	case ExportList:
		return "Layer list (text manifest)"
	default:
		return unknownDescription
	}
}

// AllExportModes returns the modes in menu order.
func AllExportModes() []ExportMode {
	return []ExportMode{ExportIndividual, ExportMerged, ExportList}
}

// Placement selects the output raster size of a single-layer render.
type Placement int

const (
	// PlacementFullCanvas renders at document size with the layer at its offset.
	PlacementFullCanvas Placement = iota

	// PlacementNative renders at the layer's own size at the origin.
	PlacementNative
)

// String returns the string representation.
func (p Placement) String() string {
	if p == PlacementNative {
		return "native"
	}
	return "full_canvas"
}

// Progress reports how far an export has come.
type Progress struct {
	// Percent is between 0 and 100.
	Percent float64

	// Status is a human-readable description of the current step.
	Status string
}

// ProgressFunc receives progress after each unit of export work.
type ProgressFunc func(Progress)

// Report calls f if it is non-nil.
func (f ProgressFunc) Report(percent float64, status string) {
	if f != nil {
		f(Progress{Percent: percent, Status: status})
	}
}

// Artifact is a named blob produced by an export.
type Artifact struct {
	Name string
	Data []byte
}

// ItemFailure records why one selected entry was skipped.
type ItemFailure struct {
	// Index is the flat entry index.
	Index int

	// Name is the entry's display name.
	Name string

	// Reason is the error message.
	Reason string
}

// RenderItem is the outcome of rendering one entry:
// either Image is set, or Err explains why it is not.
type RenderItem struct {
	Index int
	Entry FlatEntry
	Image image.Image
	Err   error
}

// OK reports whether the item rendered.
func (r RenderItem) OK() bool {
	return r.Err == nil && r.Image != nil
}

// RenderBatch collects the per-entry outcomes of a render run.
type RenderBatch struct {
	Items []RenderItem
}

// Succeeded returns the items that rendered.
func (b *RenderBatch) Succeeded() []RenderItem {
	var out []RenderItem
	for _, item := range b.Items {
		if item.OK() {
			out = append(out, item)
		}
	}
	return out
}

// Failures returns the items that did not render as ItemFailures.
func (b *RenderBatch) Failures() []ItemFailure {
	var out []ItemFailure
	for _, item := range b.Items {
		if item.OK() {
			continue
		}
		reason := "no image produced"
		if item.Err != nil {
			reason = item.Err.Error()
		}
		out = append(out, ItemFailure{
			Index:  item.Index,
			Name:   item.Entry.DisplayName,
			Reason: reason,
		})
	}
	return out
}

// ExportRequest describes one export run.
type ExportRequest struct {
	// Mode selects what to produce.
	Mode ExportMode

	// Placement applies to individual exports. Merges always composite at
	// the layers' own offsets on the full canvas.
	Placement Placement

	// Format is the image format tag (png, bmp, tiff). Empty uses the setting.
	Format string

	// OutputDir overrides the configured output directory.
	OutputDir string
}

// ExportResult describes what an export run produced.
type ExportResult struct {
	// ID identifies the run in the export history.
	ID string

	// Mode is the mode that was run.
	Mode ExportMode

	// Document is the source document name.
	Document string

	// Files lists the produced file names, including archive members.
	Files []string

	// Saved lists the locations written by the saver.
	Saved []string

	// Failures lists the selected entries that were skipped.
	Failures []ItemFailure

	StartedAt  time.Time
	FinishedAt time.Time
}

// Partial reports whether some selected entries were skipped.
func (r *ExportResult) Partial() bool {
	return len(r.Failures) > 0
}

// SessionState is the lifecycle state of the editing session.
type SessionState int

const (
	// StateEmpty means no document has been loaded.
	StateEmpty SessionState = iota

	// StateLoaded means a document is loaded and selectable.
	StateLoaded

	// StateExporting means an export is running.
	StateExporting
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateExporting:
		return "exporting"
	default:
		return "unknown"
	}
}
