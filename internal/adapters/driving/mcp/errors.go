// Package mcp provides an MCP (Model Context Protocol) server adapter for Inkwell.
// It lets AI assistants analyze prose and read the live analysis state.
package mcp

import "errors"

// ErrMissingCoordinator is returned when the analysis coordinator is not provided.
var ErrMissingCoordinator = errors.New("mcp: analysis coordinator is required")
