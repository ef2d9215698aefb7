package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// Ensure PreferencesStore implements the interface.
var _ driven.PreferencesStore = (*PreferencesStore)(nil)

// PreferencesStore is an in-memory implementation of driven.PreferencesStore.
type PreferencesStore struct {
	mu    sync.RWMutex
	prefs domain.WriterPreferences
}

// NewPreferencesStore creates a new in-memory preferences store.
func NewPreferencesStore() *PreferencesStore {
	return &PreferencesStore{}
}

// LoadPreferences returns a copy of the stored preferences.
func (s *PreferencesStore) LoadPreferences(_ context.Context) (*domain.WriterPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &domain.WriterPreferences{
		Session: s.prefs.Session,
		Goals:   slices.Clone(s.prefs.Goals),
	}, nil
}

// SavePreferences replaces the stored preferences.
func (s *PreferencesStore) SavePreferences(_ context.Context, prefs *domain.WriterPreferences) error {
	if prefs == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = domain.WriterPreferences{
		Session: prefs.Session,
		Goals:   slices.Clone(prefs.Goals),
	}
	return nil
}
