// Package tui provides an interactive terminal user interface for layerex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Session holds the open document and its selection.
	Session driving.SessionService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// History lists past exports. Optional.
	History driving.HistoryService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionService,
	settings driving.SettingsService,
	history driving.HistoryService,
) *Ports {
	return &Ports{
		Session:  session,
		Settings: settings,
		History:  history,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
