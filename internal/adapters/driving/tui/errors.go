package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrInvalidPorts is returned when no ports are provided.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
