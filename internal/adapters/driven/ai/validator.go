package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks LLM settings before the settings service saves
// them: the provider must be one Inkwell supports and must answer a ping.
type ConfigValidator struct {
	// Timeout bounds the ping. Zero uses pingTimeout.
	Timeout time.Duration

	create func(*domain.LLMSettings) (driven.LLMService, error)
}

// NewConfigValidator creates a validator that builds real provider clients.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{create: CreateLLMService}
}

// ValidateLLM accepts settings with no provider, since remote suggestions
// are optional, and otherwise pings the provider.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	if settings == nil || settings.Provider == "" {
		return nil
	}
	if !settings.Provider.IsValid() {
		return fmt.Errorf("%w: unsupported LLM provider %q", domain.ErrInvalidInput, settings.Provider)
	}
	if !settings.IsConfigured() {
		return fmt.Errorf("%w: %s requires an API key", domain.ErrInvalidInput, settings.Provider.Description())
	}

	svc, err := v.create(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	defer svc.Close()

	timeout := v.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s at %s: %w", domain.ErrLLMUnavailable, settings.Provider, endpoint(settings), err)
	}
	return nil
}

func endpoint(settings *domain.LLMSettings) string {
	if settings.BaseURL != "" {
		return settings.BaseURL
	}
	return "default endpoint"
}
