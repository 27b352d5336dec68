package mcp

import (
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// NewSession creates an isolated session for one tool call.
	NewSession func() driving.SessionService

	// Settings exposes the application settings. Optional.
	Settings driving.SettingsService

	// History lists past exports. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.NewSession == nil {
		return ErrMissingSessionFactory
	}
	return nil
}
