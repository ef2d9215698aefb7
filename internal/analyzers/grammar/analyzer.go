// Package grammar is a rule-based scanner for common grammar, clarity and
// style problems. It uses fixed word lists and patterns and is not a
// linguistically complete grammar checker.
package grammar

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// Config controls which rules run and how results are filtered.
type Config struct {
	// Disabled lists rule types that are skipped.
	Disabled map[domain.GrammarSuggestionType]bool

	// MinimumConfidence drops suggestions below this confidence.
	MinimumConfidence float64

	// MaxSuggestions caps the result; 0 means unlimited.
	MaxSuggestions int
}

// DefaultConfig runs every rule with the default thresholds.
func DefaultConfig() Config {
	return Config{
		MinimumConfidence: domain.DefaultMinimumConfidence,
		MaxSuggestions:    domain.DefaultMaxSuggestions,
	}
}

// Option overrides part of the configuration for a single Analyze call.
type Option func(*Config)

// WithMinimumConfidence overrides the confidence threshold.
func WithMinimumConfidence(c float64) Option {
	return func(cfg *Config) { cfg.MinimumConfidence = c }
}

// WithMaxSuggestions overrides the suggestion cap.
func WithMaxSuggestions(n int) Option {
	return func(cfg *Config) { cfg.MaxSuggestions = n }
}

// WithRules runs only the listed rule types.
func WithRules(types ...domain.GrammarSuggestionType) Option {
	return func(cfg *Config) {
		disabled := make(map[domain.GrammarSuggestionType]bool)
		for _, r := range rules {
			if !slices.Contains(types, r.typ) {
				disabled[r.typ] = true
			}
		}
		cfg.Disabled = disabled
	}
}

// WithoutRules skips the listed rule types in addition to those already disabled.
func WithoutRules(types ...domain.GrammarSuggestionType) Option {
	return func(cfg *Config) {
		disabled := make(map[domain.GrammarSuggestionType]bool, len(cfg.Disabled)+len(types))
		for k, v := range cfg.Disabled {
			disabled[k] = v
		}
		for _, t := range types {
			disabled[t] = true
		}
		cfg.Disabled = disabled
	}
}

// Analyzer scans text for grammar suggestions.
type Analyzer struct {
	config Config
}

// New creates a grammar analyzer.
func New(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze returns suggestions for text in rule discovery order.
// Positions are byte offsets into text. The result for a given text and
// configuration is always the same.
func (a *Analyzer) Analyze(text string, opts ...Option) (suggestions []domain.GrammarSuggestion) {
	cfg := a.config
	for _, opt := range opts {
		opt(&cfg)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("grammar analysis recovered from panic: %v", r)
			suggestions = []domain.GrammarSuggestion{}
		}
	}()

	suggestions = []domain.GrammarSuggestion{}
	if text == "" {
		return suggestions
	}

	for _, r := range rules {
		if cfg.Disabled[r.typ] || r.confidence < cfg.MinimumConfidence {
			continue
		}
		for _, f := range r.find(text) {
			suggestions = append(suggestions, domain.GrammarSuggestion{
				ID:            fmt.Sprintf("%s-%d-%d", r.typ, f.start, f.end),
				Type:          r.typ,
				Severity:      r.severity,
				Category:      r.category,
				Position:      domain.PositionAt(text, f.start, f.end),
				OriginalText:  text[f.start:f.end],
				SuggestedText: f.suggested,
				Message:       f.message,
				Explanation:   r.explanation,
				Confidence:    r.confidence,
			})
		}
	}

	return truncate(suggestions, cfg.MaxSuggestions)
}

// Check runs Analyze and CalculateClarityMetrics together.
func (a *Analyzer) Check(text string, opts ...Option) domain.GrammarResult {
	return domain.GrammarResult{
		Suggestions: a.Analyze(text, opts...),
		Clarity:     CalculateClarityMetrics(text),
	}
}

// truncate keeps the limit highest-confidence suggestions, dropping later
// discoveries first on ties, and preserves discovery order among survivors.
func truncate(s []domain.GrammarSuggestion, limit int) []domain.GrammarSuggestion {
	if limit <= 0 || len(s) <= limit {
		return s
	}

	order := make([]int, len(s))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case s[a].Confidence > s[b].Confidence:
			return -1
		case s[a].Confidence < s[b].Confidence:
			return 1
		default:
			return a - b
		}
	})

	keep := order[:limit]
	slices.Sort(keep)

	out := make([]domain.GrammarSuggestion, 0, limit)
	for _, i := range keep {
		out = append(out, s[i])
	}
	return out
}
