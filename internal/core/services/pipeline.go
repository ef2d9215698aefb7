package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/inkwell/internal/analyzers/grammar"
	"github.com/custodia-labs/inkwell/internal/analyzers/merge"
	"github.com/custodia-labs/inkwell/internal/analyzers/readability"
	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// AnalysisRequest is one unit of work for an AnalysisRunner.
type AnalysisRequest struct {
	Content string
	Kinds   []domain.AnalysisKind
	Goals   []domain.WritingGoal
}

// AnalysisRunner runs analyzers over a content snapshot.
// Runners report per-kind failures in AnalysisResults.Failures and return an
// error only when nothing could be produced.
type AnalysisRunner interface {
	Run(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResults, error)
}

// StyleAnalyzer produces style reports.
type StyleAnalyzer interface {
	Analyze(text string) *domain.StyleAnalysisResult
}

// GrammarAnalyzer produces grammar suggestions and clarity metrics.
type GrammarAnalyzer interface {
	Analyze(text string, opts ...grammar.Option) []domain.GrammarSuggestion
}

// GoalEvaluator computes goal progress.
type GoalEvaluator interface {
	Evaluate(goals []domain.WritingGoal, content string) map[string]domain.GoalProgress
}

// Ensure Pipeline implements the interface.
var _ AnalysisRunner = (*Pipeline)(nil)

// Pipeline runs the enabled analyzers concurrently and merges their output.
// A failing or panicking analyzer does not affect the others.
type Pipeline struct {
	config  domain.AnalysisConfig
	style   StyleAnalyzer
	grammar GrammarAnalyzer
	goals   GoalEvaluator
	remote  driven.SuggestionSource
	now     func() time.Time
}

// NewPipeline creates a pipeline. remote may be nil.
func NewPipeline(
	config domain.AnalysisConfig,
	style StyleAnalyzer,
	grammarAnalyzer GrammarAnalyzer,
	goals GoalEvaluator,
	remote driven.SuggestionSource,
) *Pipeline {
	return &Pipeline{
		config:  config,
		style:   style,
		grammar: grammarAnalyzer,
		goals:   goals,
		remote:  remote,
		now:     time.Now,
	}
}

// Run analyzes req.Content for every requested and enabled kind.
// It returns domain.ErrAnalysisFailed when every kind failed.
func (p *Pipeline) Run(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResults, error) {
	start := p.now()
	results := &domain.AnalysisResults{
		WordCount: len(readability.Words(req.Content)),
		Inline:    []domain.InlineSuggestion{},
	}

	kinds := p.enabledKinds(req.Kinds)

	var mu sync.Mutex
	var errs []error
	failures := make(map[domain.AnalysisKind]string)
	g, gctx := errgroup.WithContext(ctx)

	for _, kind := range kinds {
		g.Go(func() error {
			err := p.runKind(kind, req, results, &mu)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("pipeline: %s analysis failed: %v", kind, err)
				failures[kind] = err.Error()
				errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			} else {
				results.Completed = append(results.Completed, kind)
			}
			return nil // failures are isolated per kind
		})
	}

	if p.config.EnableRemoteSuggestions && p.remote != nil {
		g.Go(func() error {
			suggestions, err := p.remote.Suggest(gctx, req.Content)
			if err != nil {
				logger.Warn("pipeline: remote suggestions unavailable: %v", err)
				return nil
			}
			mu.Lock()
			results.Remote = suggestions
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if len(failures) > 0 {
		results.Failures = failures
	}
	results.Completed = orderKinds(results.Completed)

	if len(kinds) > 0 && len(results.Completed) == 0 {
		results.Duration = p.now().Sub(start)
		return results, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, errors.Join(errs...))
	}

	results.Inline = merge.Merge(merge.Input{
		Content:   req.Content,
		Grammar:   results.Grammar,
		Style:     results.Style,
		Goals:     results.Goals,
		Remote:    results.Remote,
		MaxRemote: p.config.MaxSuggestionsPerType,
		Now:       p.now(),
	})
	results.Duration = p.now().Sub(start)
	return results, nil
}

// enabledKinds expands the request and drops kinds switched off in config.
func (p *Pipeline) enabledKinds(requested []domain.AnalysisKind) []domain.AnalysisKind {
	var kinds []domain.AnalysisKind
	for _, k := range domain.ExpandKinds(requested) {
		if p.config.KindEnabled(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// runKind runs one analyzer, recovering panics into domain.ErrAnalyzerPanic.
func (p *Pipeline) runKind(
	kind domain.AnalysisKind,
	req AnalysisRequest,
	results *domain.AnalysisResults,
	mu *sync.Mutex,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("pipeline: %s panic stack: %s", kind, debug.Stack())
			err = fmt.Errorf("%w: %v", domain.ErrAnalyzerPanic, r)
		}
	}()

	switch kind {
	case domain.AnalysisStyle:
		style := p.style.Analyze(req.Content)
		mu.Lock()
		results.Style = style
		mu.Unlock()

	case domain.AnalysisReadability:
		scores := readability.Analyze(req.Content)
		mu.Lock()
		results.Readability = &scores
		mu.Unlock()

	case domain.AnalysisGrammar:
		suggestions := p.grammar.Analyze(req.Content,
			grammar.WithMinimumConfidence(p.config.MinimumConfidence),
			grammar.WithMaxSuggestions(p.config.MaxSuggestions),
		)
		clarity := grammar.CalculateClarityMetrics(req.Content)
		mu.Lock()
		results.Grammar = suggestions
		results.Clarity = &clarity
		mu.Unlock()

	case domain.AnalysisGoals:
		progress := p.goals.Evaluate(req.Goals, req.Content)
		mu.Lock()
		results.Goals = progress
		mu.Unlock()

	default:
		return fmt.Errorf("%w: unknown analysis kind %q", domain.ErrInvalidInput, kind)
	}
	return nil
}

// orderKinds sorts kinds into the fixed AllAnalysisKinds order.
func orderKinds(kinds []domain.AnalysisKind) []domain.AnalysisKind {
	if len(kinds) == 0 {
		return []domain.AnalysisKind{}
	}
	return domain.ExpandKinds(kinds)
}
