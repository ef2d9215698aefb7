package driven

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// SuggestionSource produces prose suggestions from outside the local analyzers,
// typically a remote language model. It is optional; the coordinator runs without it.
type SuggestionSource interface {
	// Suggest returns suggestions for content.
	// Implementations fall back to deterministic local suggestions when the
	// remote service is unavailable, so an error means nothing could be produced.
	Suggest(ctx context.Context, content string) ([]domain.WritingSuggestion, error)
}
