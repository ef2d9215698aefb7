package driving

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// AnalysisCoordinator runs real-time analysis over changing content.
type AnalysisCoordinator interface {
	// Start activates the coordinator and begins batch processing.
	// Calling Start on a running coordinator does nothing.
	// Returns an error if the configuration is invalid.
	Start(ctx context.Context) error

	// Stop deactivates the coordinator, discards queued and in-flight work
	// and resets the analysis state.
	Stop()

	// Running returns true if the coordinator is active.
	Running() bool

	// UpdateContent records a content change. Analysis runs once the
	// content has been quiet for the debounce period.
	UpdateContent(text string)

	// AnalyzeNow analyzes text immediately, bypassing the queue.
	// Empty kinds means every enabled kind.
	AnalyzeNow(ctx context.Context, text string, kinds ...domain.AnalysisKind) (*domain.AnalysisResults, error)

	// AcceptSuggestion removes an inline suggestion and counts it as accepted.
	// Returns false if no suggestion has that ID.
	AcceptSuggestion(id string) bool

	// DismissSuggestion removes an inline suggestion and counts it as dismissed.
	// Returns false if no suggestion has that ID.
	DismissSuggestion(id string) bool

	// State returns a snapshot of the current analysis state.
	State() domain.AnalysisState

	// Subscribe returns a channel receiving a snapshot after every state
	// change, and a function that unsubscribes and closes the channel.
	Subscribe() (<-chan domain.AnalysisState, func())

	// SetSession sets the project and chapter used for history records.
	SetSession(session domain.Session)

	// SetGoals replaces the goals evaluated by goal analysis.
	SetGoals(goals []domain.WritingGoal)

	// Config returns the active analysis configuration.
	Config() domain.AnalysisConfig
}
