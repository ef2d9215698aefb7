// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService is a language model used for remote writing suggestions.
// It is optional: with no service configured the suggestion source
// answers from local heuristics.
type LLMService interface {
	// Generate completes a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName names the model, for log lines.
	ModelName() string

	// Ping checks that the provider is reachable and the credentials are
	// accepted, without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions tunes one Generate call. Zero values use the
// provider's defaults.
type GenerateOptions struct {
	// System is sent as the system prompt where the provider supports one.
	System string

	MaxTokens   int
	Temperature float64
	StopWords   []string

	// JSON asks the provider to constrain output to a single JSON value.
	// Providers without a native JSON mode are steered by prefilling.
	JSON bool
}
