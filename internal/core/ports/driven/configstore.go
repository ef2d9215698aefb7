package driven

// ConfigStore holds settings as flat dotted keys ("analysis.debounce_ms",
// "llm.provider"). The typed getters return the zero value for a missing
// key or a value that does not convert.
type ConfigStore interface {
	// Get returns the raw stored value.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value and persists it immediately.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the in-memory values with what storage holds.
	Load() error

	// Path names the backing file, or ":memory:".
	Path() string
}
