// Package mcp provides an MCP (Model Context Protocol) server adapter for layerex.
// It lets AI assistants list, export and describe the layers of PSD documents.
package mcp

import "errors"

// ErrMissingSessionFactory is returned when no session factory is provided.
var ErrMissingSessionFactory = errors.New("mcp: session factory is required")

// ErrMissingPath is returned when a tool call names no document.
var ErrMissingPath = errors.New("mcp: path is required")
