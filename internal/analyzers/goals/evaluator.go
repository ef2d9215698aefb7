// Package goals evaluates writing goals against content.
package goals

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/custodia-labs/inkwell/internal/analyzers/readability"
	"github.com/custodia-labs/inkwell/internal/analyzers/style"
	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Feedback messages.
const (
	FeedbackAchieved   = "Goal achieved! Keep up the great work."
	FeedbackAlmost     = "Almost there! A few more adjustments will get you to your goal."
	FeedbackContinuing = "Keep writing to make progress toward this goal."
)

// StyleAnalyzer is the part of the style analyzer goal evaluation needs.
type StyleAnalyzer interface {
	Analyze(text string) *domain.StyleAnalysisResult
}

// subject is the content under evaluation. Style analysis is computed on first use.
type subject struct {
	text      string
	wordCount int
	style     func() *domain.StyleAnalysisResult
}

// extractor turns one goal target into metrics. It returns nil when the goal has no such target.
type extractor func(goal domain.WritingGoal, s *subject) []domain.MetricProgress

// Evaluator computes goal progress.
type Evaluator struct {
	style      StyleAnalyzer
	extractors []extractor
}

// New creates an evaluator. A nil style analyzer uses the default style configuration.
func New(styleAnalyzer StyleAnalyzer) *Evaluator {
	if styleAnalyzer == nil {
		styleAnalyzer = style.New(style.DefaultConfig())
	}
	return &Evaluator{
		style: styleAnalyzer,
		extractors: []extractor{
			readabilityMetrics,
			lengthMetrics,
			toneMetrics,
			vocabularyMetrics,
			styleMetrics,
			pacingMetrics,
		},
	}
}

// Evaluate returns progress for every active goal, keyed by goal ID.
func (e *Evaluator) Evaluate(goals []domain.WritingGoal, content string) map[string]domain.GoalProgress {
	s := &subject{
		text:      content,
		wordCount: len(readability.Words(content)),
		style:     sync.OnceValue(func() *domain.StyleAnalysisResult { return e.style.Analyze(content) }),
	}

	out := make(map[string]domain.GoalProgress, len(goals))
	for _, goal := range goals {
		if !goal.Active {
			continue
		}
		out[goal.ID] = e.evaluate(goal, s)
	}
	return out
}

// EvaluateGoal returns progress for a single goal regardless of its active flag.
func (e *Evaluator) EvaluateGoal(goal domain.WritingGoal, content string) domain.GoalProgress {
	goal.Active = true
	return e.Evaluate([]domain.WritingGoal{goal}, content)[goal.ID]
}

func (e *Evaluator) evaluate(goal domain.WritingGoal, s *subject) domain.GoalProgress {
	var metrics []domain.MetricProgress
	for _, extract := range e.extractors {
		metrics = append(metrics, extract(goal, s)...)
	}

	progress := 100
	if len(metrics) > 0 {
		counted := 0
		for _, m := range metrics {
			if m.Status.Counts() {
				counted++
			}
		}
		progress = int(math.Round(100 * float64(counted) / float64(len(metrics))))
	}

	return domain.GoalProgress{
		GoalID:     goal.ID,
		GoalName:   goal.Name,
		IsAchieved: progress >= domain.GoalAchievedThreshold,
		Progress:   progress,
		Metrics:    metrics,
		Feedback:   feedback(progress, metrics),
	}
}

func feedback(progress int, metrics []domain.MetricProgress) string {
	switch {
	case progress == 100:
		return FeedbackAchieved
	case progress >= domain.GoalAchievedThreshold:
		return FeedbackAlmost
	}

	var below []string
	for _, m := range metrics {
		if m.Status == domain.MetricBelow {
			below = append(below, m.Label)
			if len(below) == 2 {
				break
			}
		}
	}
	if len(below) > 0 {
		return fmt.Sprintf("Focus on improving: %s.", strings.Join(below, " and "))
	}
	return FeedbackContinuing
}
