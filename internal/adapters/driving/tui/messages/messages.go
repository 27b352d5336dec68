// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"image"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewOpen asks for a document path.
	ViewOpen
	// ViewLayers is the flattened layer list with selection.
	ViewLayers
	// ViewExport configures and runs an export.
	ViewExport
	// ViewHistory lists past export runs.
	ViewHistory
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewOpen:
		return "open"
	case ViewLayers:
		return "layers"
	case ViewExport:
		return "export"
	case ViewHistory:
		return "history"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentLoaded signals that a load attempt finished.
type DocumentLoaded struct {
	Path string
	Err  error
}

// SelectionChanged signals that the layer selection was edited.
type SelectionChanged struct {
	Selected int
}

// PreviewLoaded carries a rendered layer preview.
type PreviewLoaded struct {
	Index int
	Image image.Image
	Err   error
}

// ExportProgress carries one progress report of a running export.
type ExportProgress struct {
	Progress domain.Progress
}

// ExportCompleted signals that an export run finished.
type ExportCompleted struct {
	Result *domain.ExportResult
	Err    error
}

// HistoryLoaded carries past export runs.
type HistoryLoaded struct {
	Records []domain.ExportRecord
	Enabled bool
	Err     error
}

// HistoryCleared signals the history was deleted.
type HistoryCleared struct {
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.Settings
	Err      error
}

// SettingsSaved signals a setting was stored or reset.
type SettingsSaved struct {
	Key string
	Err error
}
