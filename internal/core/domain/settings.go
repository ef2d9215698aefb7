package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Permitted ranges for analysis settings.
const (
	MinDebounce              = 100 * time.Millisecond
	MaxDebounce              = 3 * time.Second
	MinBatchInterval         = 50 * time.Millisecond
	MaxBatchInterval         = time.Second
	MinBatchSize             = 1
	MaxBatchSize             = 20
	MinConcurrentAnalyses    = 1
	MaxConcurrentAnalyses    = 5
	DefaultMaxSuggestions    = 50
	DefaultMaxPerType        = 10
	DefaultMinimumConfidence = 0.5
)

// AIProvider identifies an AI service provider for remote suggestions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AnalysisConfig controls the real-time coordinator and its analyzers.
type AnalysisConfig struct {
	// Enabled is the master switch; content updates are ignored when false.
	Enabled bool

	// Debounce is the quiet period before a content change is queued.
	Debounce time.Duration

	// BatchInterval is how often the pending queue is drained.
	BatchInterval time.Duration

	// MaxBatchSize caps how many batches one tick may start.
	MaxBatchSize int

	// MaxConcurrentAnalyses caps how many batches may be in flight.
	MaxConcurrentAnalyses int

	// MinimumConfidence drops grammar suggestions below this confidence.
	MinimumConfidence float64

	// MaxSuggestions caps the grammar suggestion list.
	MaxSuggestions int

	// MaxSuggestionsPerType caps remote suggestions in the merged list.
	MaxSuggestionsPerType int

	EnableStyle             bool
	EnableGrammar           bool
	EnableGoals             bool
	EnableReadability       bool
	EnableRemoteSuggestions bool
}

// KindEnabled reports whether the analyzer family for kind is switched on.
func (c AnalysisConfig) KindEnabled(kind AnalysisKind) bool {
	switch kind {
	case AnalysisStyle:
		return c.EnableStyle
	case AnalysisGrammar:
		return c.EnableGrammar
	case AnalysisGoals:
		return c.EnableGoals
	case AnalysisReadability:
		return c.EnableReadability
	default:
		return false
	}
}

// Validate checks every setting against its permitted range.
func (c AnalysisConfig) Validate() error {
	if c.Debounce < MinDebounce || c.Debounce > MaxDebounce {
		return fmt.Errorf("%w: debounce %s outside %s-%s", ErrInvalidConfig, c.Debounce, MinDebounce, MaxDebounce)
	}
	if c.BatchInterval < MinBatchInterval || c.BatchInterval > MaxBatchInterval {
		return fmt.Errorf("%w: batch interval %s outside %s-%s",
			ErrInvalidConfig, c.BatchInterval, MinBatchInterval, MaxBatchInterval)
	}
	if c.MaxBatchSize < MinBatchSize || c.MaxBatchSize > MaxBatchSize {
		return fmt.Errorf("%w: max batch size %d outside %d-%d", ErrInvalidConfig, c.MaxBatchSize, MinBatchSize, MaxBatchSize)
	}
	if c.MaxConcurrentAnalyses < MinConcurrentAnalyses || c.MaxConcurrentAnalyses > MaxConcurrentAnalyses {
		return fmt.Errorf("%w: max concurrent analyses %d outside %d-%d",
			ErrInvalidConfig, c.MaxConcurrentAnalyses, MinConcurrentAnalyses, MaxConcurrentAnalyses)
	}
	if c.MinimumConfidence < 0 || c.MinimumConfidence > 1 {
		return fmt.Errorf("%w: minimum confidence %.2f outside 0-1", ErrInvalidConfig, c.MinimumConfidence)
	}
	if c.MaxSuggestions < 1 {
		return fmt.Errorf("%w: max suggestions must be positive", ErrInvalidConfig)
	}
	if c.MaxSuggestionsPerType < 1 {
		return fmt.Errorf("%w: max suggestions per type must be positive", ErrInvalidConfig)
	}
	return nil
}

// DefaultAnalysisConfig returns the coordinator defaults.
// Remote suggestions are off until an LLM provider is configured.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Enabled:               true,
		Debounce:              500 * time.Millisecond,
		BatchInterval:         200 * time.Millisecond,
		MaxBatchSize:          5,
		MaxConcurrentAnalyses: 2,
		MinimumConfidence:     DefaultMinimumConfidence,
		MaxSuggestions:        DefaultMaxSuggestions,
		MaxSuggestionsPerType: DefaultMaxPerType,
		EnableStyle:           true,
		EnableGrammar:         true,
		EnableGoals:           true,
		EnableReadability:     true,
	}
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Analysis holds coordinator and analyzer settings.
	Analysis AnalysisConfig

	// LLM holds the remote suggestion provider settings.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured by default.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Analysis: DefaultAnalysisConfig(),
		LLM:      LLMSettings{},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
