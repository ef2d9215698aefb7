package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// stubLLM records Ping and Close calls.
type stubLLM struct {
	mu      sync.Mutex
	pingErr error
	pinged  bool
	closed  bool
	delay   time.Duration
}

func (s *stubLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return "", nil
}

func (s *stubLLM) ModelName() string { return "stub" }

func (s *stubLLM) Ping(ctx context.Context) error {
	s.mu.Lock()
	s.pinged = true
	delay, err := s.delay, s.pingErr
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (s *stubLLM) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func stubValidator(llm *stubLLM, createErr error) *ConfigValidator {
	return &ConfigValidator{create: func(*domain.LLMSettings) (driven.LLMService, error) {
		if createErr != nil {
			return nil, createErr
		}
		return llm, nil
	}}
}

// ==================== ValidateLLM Tests ====================

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	assert.NoError(t, NewConfigValidator().ValidateLLM(nil))
}

func TestConfigValidator_ValidateLLM_NoProvider(t *testing.T) {
	config := &domain.LLMSettings{Provider: "", Model: "test-model"}

	assert.NoError(t, NewConfigValidator().ValidateLLM(config))
}

func TestConfigValidator_ValidateLLM_UnknownProvider(t *testing.T) {
	err := NewConfigValidator().ValidateLLM(&domain.LLMSettings{Provider: "mistral"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "mistral")
}

func TestConfigValidator_ValidateLLM_MissingAPIKey(t *testing.T) {
	llm := &stubLLM{}
	err := stubValidator(llm, nil).ValidateLLM(&domain.LLMSettings{Provider: domain.AIProviderAnthropic})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "API key")
	assert.False(t, llm.pinged)
}

func TestConfigValidator_ValidateLLM_CreateError(t *testing.T) {
	err := stubValidator(nil, errors.New("bad base URL")).
		ValidateLLM(&domain.LLMSettings{Provider: domain.AIProviderOllama})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad base URL")
}

func TestConfigValidator_ValidateLLM_PingFailure(t *testing.T) {
	llm := &stubLLM{pingErr: errors.New("connection refused")}
	err := stubValidator(llm, nil).ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://localhost:11434",
	})

	require.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "http://localhost:11434")
	assert.True(t, llm.closed)
}

func TestConfigValidator_ValidateLLM_Timeout(t *testing.T) {
	llm := &stubLLM{delay: time.Second}
	v := stubValidator(llm, nil)
	v.Timeout = 10 * time.Millisecond

	err := v.ValidateLLM(&domain.LLMSettings{Provider: domain.AIProviderOllama})

	require.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfigValidator_ValidateLLM_PingsOllama(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	config := &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL}
	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateLLM(config))

	status = http.StatusInternalServerError
	assert.ErrorIs(t, validator.ValidateLLM(config), domain.ErrLLMUnavailable)
}
