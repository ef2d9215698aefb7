package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/inkwell/internal/adapters/driven/config/values"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map for tests and --ephemeral runs.
// Nothing is persisted; Save and Load are no-ops.
type ConfigStore struct {
	values.Typed

	mu   sync.RWMutex
	data map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreFrom(nil)
}

// NewConfigStoreFrom creates a store holding a copy of seed.
func NewConfigStoreFrom(seed map[string]any) *ConfigStore {
	s := &ConfigStore{data: make(map[string]any, len(seed))}
	maps.Copy(s.data, seed)
	s.Typed = values.Typed{Lookup: s.Get}
	return s
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:", matching the sqlite in-memory DSN.
func (s *ConfigStore) Path() string { return ":memory:" }
