package mcp

import (
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Coordinator runs analyses and holds the live state.
	Coordinator driving.AnalysisCoordinator

	// Goals lists the writer's goals.
	Goals driving.GoalService

	// History reads saved analysis records.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Coordinator == nil {
		return ErrMissingCoordinator
	}
	// Goals and History are optional
	return nil
}
