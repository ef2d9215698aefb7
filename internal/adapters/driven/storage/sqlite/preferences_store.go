package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// preferencesStore implements driven.PreferencesStore as a single JSON row.
type preferencesStore struct {
	store *Store
}

var _ driven.PreferencesStore = (*preferencesStore)(nil)

// LoadPreferences returns the stored preferences.
// Returns empty preferences and no error if nothing has been saved.
func (s *preferencesStore) LoadPreferences(ctx context.Context) (*domain.WriterPreferences, error) {
	var data string
	err := s.store.db.QueryRowContext(ctx, "SELECT data FROM preferences WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.WriterPreferences{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	var prefs domain.WriterPreferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return nil, fmt.Errorf("unmarshalling preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences replaces the stored preferences.
func (s *preferencesStore) SavePreferences(ctx context.Context, prefs *domain.WriterPreferences) error {
	if prefs == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshalling preferences: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO preferences (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, string(data), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}
