// Package suggestions provides the remote suggestion source.
//
// Suggestions come from the configured LLM, rate limited with a token bucket.
// When no LLM is configured, the bucket is empty, or the model's reply cannot
// be used, the source falls back to deterministic local heuristics.
package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SuggestionSource = (*Source)(nil)

// Defaults for Config.
const (
	DefaultRequestsPerSecond = 0.5
	DefaultBurst             = 2
	DefaultMaxSuggestions    = 5

	// shortContentChars is the length below which content is considered too short.
	shortContentChars = 100

	systemPrompt = "You are a fiction editor. Reply with one JSON object and no other text."
)

// Config tunes the remote source.
type Config struct {
	// RequestsPerSecond is the sustained LLM request rate.
	RequestsPerSecond float64

	// Burst is the number of requests allowed back to back.
	Burst int

	// MaxSuggestions is passed to the prompt and caps the parsed reply.
	MaxSuggestions int
}

// DefaultConfig returns the default source configuration.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
		MaxSuggestions:    DefaultMaxSuggestions,
	}
}

// Source produces writing suggestions for a passage.
type Source struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	limiter *rate.Limiter
	max     int
}

// NewSource creates a suggestion source. llm and prompts may be nil,
// in which case only local suggestions are produced.
func NewSource(llm driven.LLMService, prompts driven.PromptStore, cfg Config) *Source {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}

	return &Source{
		llm:     llm,
		prompts: prompts,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		max:     cfg.MaxSuggestions,
	}
}

// Suggest returns suggestions for content. It never blocks on the rate limiter:
// a request over the limit is answered locally.
func (s *Source) Suggest(ctx context.Context, content string) ([]domain.WritingSuggestion, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	if s.llm == nil {
		return LocalSuggestions(content), nil
	}
	if !s.limiter.Allow() {
		logger.Debug("suggestions: rate limited, using local suggestions")
		return LocalSuggestions(content), nil
	}

	suggestions, err := s.remote(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("suggestions: %s failed, using local suggestions: %v", s.llm.ModelName(), err)
		return LocalSuggestions(content), nil
	}
	return suggestions, nil
}

func (s *Source) remote(ctx context.Context, content string) ([]domain.WritingSuggestion, error) {
	prompt, err := s.loadPrompt()
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Generate(ctx, fmt.Sprintf(prompt, s.max, content), driven.GenerateOptions{
		System:      systemPrompt,
		MaxTokens:   1024,
		Temperature: 0.3,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	suggestions, err := parseReply(content, reply)
	if err != nil {
		return nil, err
	}
	if len(suggestions) > s.max {
		suggestions = suggestions[:s.max]
	}
	return suggestions, nil
}

func (s *Source) loadPrompt() (string, error) {
	if s.prompts == nil {
		return "", fmt.Errorf("no prompt store configured")
	}
	prompt, err := s.prompts.Load(driven.PromptWritingSuggestions)
	if err != nil {
		return "", fmt.Errorf("load prompt: %w", err)
	}
	return prompt, nil
}

// reply is the JSON shape the prompt asks for.
type reply struct {
	Suggestions []struct {
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		Category      string  `json:"category"`
		Confidence    float64 `json:"confidence"`
		OriginalText  string  `json:"original_text"`
		SuggestedText string  `json:"suggested_text"`
	} `json:"suggestions"`
}

// parseReply decodes the model's reply. Code fences around the JSON are tolerated.
// Suggestions without a title are dropped.
func parseReply(content, raw string) ([]domain.WritingSuggestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var r reply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &r); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	out := make([]domain.WritingSuggestion, 0, len(r.Suggestions))
	for _, item := range r.Suggestions {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		suggestion := domain.WritingSuggestion{
			ID:            uuid.New().String(),
			Type:          string(domain.KindStyle),
			Severity:      domain.SeveritySuggestion,
			Message:       item.Title,
			Reasoning:     item.Description,
			Category:      item.Category,
			Confidence:    clamp01(item.Confidence),
			OriginalText:  item.OriginalText,
			SuggestedText: item.SuggestedText,
		}
		if item.OriginalText != "" {
			if idx := strings.Index(content, item.OriginalText); idx >= 0 {
				suggestion.Position = domain.PositionAt(content, idx, idx+len(item.OriginalText))
			}
		}
		out = append(out, suggestion)
	}
	return out, nil
}

// LocalSuggestions returns the deterministic suggestions used when the LLM
// is unavailable: add dialogue when the passage has no quotation marks, and
// expand the passage when it is shorter than 100 characters.
func LocalSuggestions(content string) []domain.WritingSuggestion {
	var out []domain.WritingSuggestion

	if !strings.ContainsAny(content, "\"“”") {
		out = append(out, domain.WritingSuggestion{
			ID:         "local-dialogue",
			Type:       string(domain.KindStyle),
			Severity:   domain.SeveritySuggestion,
			Message:    "Consider adding dialogue",
			Reasoning:  "Dialogue can break up narration and reveal character.",
			Category:   "dialogue",
			Confidence: 0.6,
		})
	}

	if len([]rune(strings.TrimSpace(content))) < shortContentChars {
		out = append(out, domain.WritingSuggestion{
			ID:         "local-expand",
			Type:       string(domain.KindStyle),
			Severity:   domain.SeverityInfo,
			Message:    "Expand short content",
			Reasoning:  "The passage is brief. Adding detail may help the reader settle into the scene.",
			Category:   "description",
			Confidence: 0.5,
		})
	}

	return out
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
