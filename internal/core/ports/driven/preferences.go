package driven

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// PreferencesStore loads and saves the writer's preferences (session and goals).
type PreferencesStore interface {
	// LoadPreferences returns the stored preferences.
	// Returns empty preferences and no error if nothing has been saved.
	LoadPreferences(ctx context.Context) (*domain.WriterPreferences, error)

	// SavePreferences replaces the stored preferences.
	SavePreferences(ctx context.Context, prefs *domain.WriterPreferences) error
}
