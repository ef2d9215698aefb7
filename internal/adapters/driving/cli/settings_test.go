package cli

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// ==================== Settings Command Tests ====================

func TestSettings_NoService(t *testing.T) {
	_, err := execute(t, nil, "", "settings", "show")
	assert.ErrorIs(t, err, errNoSettingsService)
}

func TestSettingsShow(t *testing.T) {
	svc := newMockSettingsService()
	svc.settings.LLM = domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "sk-1234567890abcdef",
	}

	out, err := execute(t, &Services{Settings: svc}, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Analysis]")
	assert.Regexp(t, `Debounce:\s+500ms\n`, out)
	assert.Regexp(t, `Analyzers:\s+style, grammar, goals, readability\n`, out)
	assert.Contains(t, out, "[LLM]")
	assert.Regexp(t, `API key:\s+sk-1\.\.\.cdef\n`, out)
	assert.NotContains(t, out, "sk-1234567890abcdef")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_ValidationWarning(t *testing.T) {
	svc := newMockSettingsService()
	svc.validateErr = errors.New("debounce out of range")

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: debounce out of range")
}

func TestSettingsShow_AlignsLabels(t *testing.T) {
	out, err := execute(t, &Services{Settings: newMockSettingsService()}, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "  Enabled:             yes\n")
	assert.Contains(t, out, "  Minimum confidence:  0.50\n")
}

func TestSettingsShow_JSON(t *testing.T) {
	svc := newMockSettingsService()
	svc.settings.LLM = domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "sk-ant-1234567890"}
	svc.validateErr = errors.New("debounce out of range")

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "show", "--json")
	require.NoError(t, err)

	var view settingsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, int64(500), view.Analysis.DebounceMS)
	assert.Equal(t, []string{"style", "grammar", "goals", "readability"}, view.Analysis.Analyzers)
	assert.Equal(t, "anthropic", view.LLM.Provider)
	assert.Equal(t, "sk-a...7890", view.LLM.APIKey)
	assert.True(t, view.LLM.Configured)
	assert.Equal(t, "debounce out of range", view.Error)
	assert.NotContains(t, out, "sk-ant-1234567890")
}

func TestSettingsShow_Defaults(t *testing.T) {
	svc := newMockSettingsService()
	svc.settings.Analysis.Debounce = 2 * time.Second
	svc.validateErr = errors.New("ignored for defaults")

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "--defaults")

	require.NoError(t, err)
	assert.Regexp(t, `Debounce:\s+500ms\n`, out)
	assert.NotContains(t, out, "Warning")
	assert.NotContains(t, out, "Configuration is valid.")
}

func TestSettingsReset_KeepsLLM(t *testing.T) {
	svc := newMockSettingsService()
	svc.settings.Analysis.Debounce = 2 * time.Second
	svc.settings.Analysis.EnableGrammar = false
	svc.settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "mistral"}

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "restored to defaults")
	assert.Equal(t, domain.DefaultAnalysisConfig(), svc.settings.Analysis)
	assert.Equal(t, "mistral", svc.settings.LLM.Model)
}

func TestSettingsSet(t *testing.T) {
	svc := newMockSettingsService()

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "set", "analysis.debounce_ms", "800")

	require.NoError(t, err)
	assert.Equal(t, "800", svc.set["analysis.debounce_ms"])
	assert.Contains(t, out, "analysis.debounce_ms = 800")
}

func TestSettingsSet_MasksAPIKey(t *testing.T) {
	svc := newMockSettingsService()

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "set", "llm.api_key", "sk-1234567890abcdef")

	require.NoError(t, err)
	assert.Contains(t, out, "llm.api_key = sk-1...cdef")
}

func TestSettingsSet_Error(t *testing.T) {
	svc := newMockSettingsService()
	svc.setErr = domain.ErrInvalidConfig

	_, err := execute(t, &Services{Settings: svc}, "", "settings", "set", "analysis.max_concurrent", "99")

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSettingsKeys(t *testing.T) {
	out, err := execute(t, &Services{Settings: newMockSettingsService()}, "", "settings", "keys")

	require.NoError(t, err)
	assert.Equal(t, "analysis.enabled\nllm.provider\n", out)
}

func TestSettingsLLM_LocalProvider(t *testing.T) {
	svc := newMockSettingsService()
	choice := ""
	for i, p := range domain.AllLLMProviders() {
		if !p.RequiresAPIKey() {
			choice = string(rune('1' + i))
			break
		}
	}
	require.NotEmpty(t, choice)

	out, err := execute(t, &Services{Settings: svc}, choice+"\nllama3.2\n", "settings", "llm")

	require.NoError(t, err)
	assert.Equal(t, "llama3.2", svc.settings.LLM.Model)
	assert.Contains(t, out, "Validating configuration... OK")
}

func TestSettingsLLM_ValidationFails(t *testing.T) {
	svc := newMockSettingsService()
	svc.llmErr = domain.ErrLLMUnavailable
	choice := ""
	for i, p := range domain.AllLLMProviders() {
		if !p.RequiresAPIKey() {
			choice = string(rune('1' + i))
			break
		}
	}

	out, err := execute(t, &Services{Settings: svc}, choice+"\n\n", "settings", "llm")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, out, "FAILED")
}

func TestSettingsLLM_FromFlags(t *testing.T) {
	t.Setenv(apiKeyEnv, "sk-1234567890abcdef")
	svc := newMockSettingsService()

	out, err := execute(t, &Services{Settings: svc}, "", "settings", "llm", "--provider", "OpenAI")

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, svc.settings.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModels()[domain.AIProviderOpenAI], svc.settings.LLM.Model)
	assert.Equal(t, "sk-1234567890abcdef", svc.settings.LLM.APIKey)
	assert.NotContains(t, out, "Select LLM Provider")
}

func TestSettingsLLM_FromFlagsErrors(t *testing.T) {
	t.Setenv(apiKeyEnv, "")

	_, err := execute(t, &Services{Settings: newMockSettingsService()}, "", "settings", "llm", "--provider", "mistral")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, &Services{Settings: newMockSettingsService()}, "", "settings", "llm", "--provider", "anthropic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), apiKeyEnv)
}

// ==================== Helper Tests ====================

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}
