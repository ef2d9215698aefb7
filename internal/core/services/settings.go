package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEnabled           = "analysis.enabled"
	keyDebounce          = "analysis.debounce_ms"
	keyBatchInterval     = "analysis.batch_interval_ms"
	keyMaxBatchSize      = "analysis.max_batch_size"
	keyMaxConcurrent     = "analysis.max_concurrent"
	keyMinConfidence     = "analysis.minimum_confidence"
	keyMaxSuggestions    = "analysis.max_suggestions"
	keyMaxPerType        = "analysis.max_per_type"
	keyEnableStyle       = "analysis.enable_style"
	keyEnableGrammar     = "analysis.enable_grammar"
	keyEnableGoals       = "analysis.enable_goals"
	keyEnableReadability = "analysis.enable_readability"
	keyEnableRemote      = "analysis.enable_remote"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
)

// settingKeys lists every settable key in display order.
var settingKeys = []string{
	keyEnabled, keyDebounce, keyBatchInterval, keyMaxBatchSize, keyMaxConcurrent,
	keyMinConfidence, keyMaxSuggestions, keyMaxPerType,
	keyEnableStyle, keyEnableGrammar, keyEnableGoals, keyEnableReadability, keyEnableRemote,
	keyLLMProvider, keyLLMModel, keyLLMBaseURL, keyLLMAPIKey,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
// Missing or malformed values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	d := defaults.Analysis

	settings := &domain.AppSettings{
		Analysis: domain.AnalysisConfig{
			Enabled:                 s.getBool(keyEnabled, d.Enabled),
			Debounce:                s.getMillis(keyDebounce, d.Debounce),
			BatchInterval:           s.getMillis(keyBatchInterval, d.BatchInterval),
			MaxBatchSize:            s.getInt(keyMaxBatchSize, d.MaxBatchSize),
			MaxConcurrentAnalyses:   s.getInt(keyMaxConcurrent, d.MaxConcurrentAnalyses),
			MinimumConfidence:       s.getFloat(keyMinConfidence, d.MinimumConfidence),
			MaxSuggestions:          s.getInt(keyMaxSuggestions, d.MaxSuggestions),
			MaxSuggestionsPerType:   s.getInt(keyMaxPerType, d.MaxSuggestionsPerType),
			EnableStyle:             s.getBool(keyEnableStyle, d.EnableStyle),
			EnableGrammar:           s.getBool(keyEnableGrammar, d.EnableGrammar),
			EnableGoals:             s.getBool(keyEnableGoals, d.EnableGoals),
			EnableReadability:       s.getBool(keyEnableReadability, d.EnableReadability),
			EnableRemoteSuggestions: s.getBool(keyEnableRemote, d.EnableRemoteSuggestions),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
	}

	return settings, nil
}

// Save persists application settings after range-checking them.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Analysis.Validate(); err != nil {
		return err
	}

	a := settings.Analysis
	values := []struct {
		key   string
		value any
	}{
		{keyEnabled, a.Enabled},
		{keyDebounce, int(a.Debounce.Milliseconds())},
		{keyBatchInterval, int(a.BatchInterval.Milliseconds())},
		{keyMaxBatchSize, a.MaxBatchSize},
		{keyMaxConcurrent, a.MaxConcurrentAnalyses},
		{keyMinConfidence, a.MinimumConfidence},
		{keyMaxSuggestions, a.MaxSuggestions},
		{keyMaxPerType, a.MaxSuggestionsPerType},
		{keyEnableStyle, a.EnableStyle},
		{keyEnableGrammar, a.EnableGrammar},
		{keyEnableGoals, a.EnableGoals},
		{keyEnableReadability, a.EnableReadability},
		{keyEnableRemote, a.EnableRemoteSuggestions},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// Set updates a single setting by its dotted key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	a := &settings.Analysis
	value = strings.TrimSpace(value)

	switch key {
	case keyEnabled:
		err = parseBool(value, &a.Enabled)
	case keyEnableStyle:
		err = parseBool(value, &a.EnableStyle)
	case keyEnableGrammar:
		err = parseBool(value, &a.EnableGrammar)
	case keyEnableGoals:
		err = parseBool(value, &a.EnableGoals)
	case keyEnableReadability:
		err = parseBool(value, &a.EnableReadability)
	case keyEnableRemote:
		err = parseBool(value, &a.EnableRemoteSuggestions)
	case keyDebounce:
		err = parseMillis(value, &a.Debounce)
	case keyBatchInterval:
		err = parseMillis(value, &a.BatchInterval)
	case keyMaxBatchSize:
		err = parseInt(value, &a.MaxBatchSize)
	case keyMaxConcurrent:
		err = parseInt(value, &a.MaxConcurrentAnalyses)
	case keyMaxSuggestions:
		err = parseInt(value, &a.MaxSuggestions)
	case keyMaxPerType:
		err = parseInt(value, &a.MaxSuggestionsPerType)
	case keyMinConfidence:
		a.MinimumConfidence, err = strconv.ParseFloat(value, 64)
	case keyLLMProvider:
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown llm provider %q", domain.ErrInvalidInput, value)
		}
		settings.LLM.Provider = provider
	case keyLLMModel:
		settings.LLM.Model = value
	case keyLLMBaseURL:
		settings.LLM.BaseURL = value
	case keyLLMAPIKey:
		settings.LLM.APIKey = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that current settings are within permitted ranges and that
// remote suggestions have a configured provider.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := settings.Analysis.Validate(); err != nil {
		return err
	}

	if settings.Analysis.EnableRemoteSuggestions && !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: remote suggestions require an LLM provider to be configured", domain.ErrInvalidConfig)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func parseBool(value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseInt(value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// parseMillis accepts a bare millisecond count or a Go duration ("750ms", "1s").
func parseMillis(value string, dst *time.Duration) error {
	if n, err := strconv.Atoi(value); err == nil {
		*dst = time.Duration(n) * time.Millisecond
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
