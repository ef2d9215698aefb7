package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.data)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreFrom_CopiesSeed(t *testing.T) {
	seed := map[string]any{"analysis.debounce_ms": 300}
	store := NewConfigStoreFrom(seed)

	require.NoError(t, store.Set("analysis.debounce_ms", 900))

	assert.Equal(t, 900, store.GetInt("analysis.debounce_ms"))
	assert.Equal(t, 300, seed["analysis.debounce_ms"])
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "original"))
	require.NoError(t, store.Set("llm.model", "updated"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	tests := []struct {
		name  string
		value any
		check func(t *testing.T, s *ConfigStore)
	}{
		{"string", "ollama", func(t *testing.T, s *ConfigStore) {
			assert.Equal(t, "ollama", s.GetString("k"))
		}},
		{"int", 500, func(t *testing.T, s *ConfigStore) {
			assert.Equal(t, 500, s.GetInt("k"))
			assert.Equal(t, 500.0, s.GetFloat("k"))
		}},
		{"int64", int64(7), func(t *testing.T, s *ConfigStore) {
			assert.Equal(t, 7, s.GetInt("k"))
		}},
		{"float", 0.75, func(t *testing.T, s *ConfigStore) {
			assert.Equal(t, 0.75, s.GetFloat("k"))
			assert.Equal(t, 0, s.GetInt("k"))
		}},
		{"bool", true, func(t *testing.T, s *ConfigStore) {
			assert.True(t, s.GetBool("k"))
			assert.Empty(t, s.GetString("k"))
		}},
		{"string slice", []any{".md", 3, ".txt"}, func(t *testing.T, s *ConfigStore) {
			assert.Equal(t, []string{".md", ".txt"}, s.GetStringSlice("k"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("k", tt.value))
			tt.check(t, store)
		})
	}
}

func TestConfigStore_MissingKey(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "v"))

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("counter", i)
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
