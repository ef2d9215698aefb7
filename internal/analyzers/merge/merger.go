// Package merge composes analyzer output into one severity-ordered list of
// inline suggestions.
package merge

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Caps on how many entries each source contributes.
const (
	MaxGrammar = 10
	MaxStyle   = 3

	// MinGoalProgress is the progress at which an unachieved goal is surfaced.
	MinGoalProgress = 50
)

// Input is everything the merger composes. Nil or empty parts contribute nothing.
type Input struct {
	// Content is the text the results were computed against.
	Content string

	Grammar []domain.GrammarSuggestion
	Style   *domain.StyleAnalysisResult
	Goals   map[string]domain.GoalProgress
	Remote  []domain.WritingSuggestion

	// MaxRemote caps remote suggestions; 0 uses domain.DefaultMaxPerType.
	MaxRemote int

	// Now stamps CreatedAt; zero uses time.Now.
	Now time.Time
}

// Merge builds the inline suggestion list, stably sorted by severity.
func Merge(in Input) []domain.InlineSuggestion {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]domain.InlineSuggestion, 0, MaxGrammar+MaxStyle+len(in.Goals)+len(in.Remote))
	out = append(out, grammarSuggestions(in, now)...)
	out = append(out, styleSuggestions(in, now)...)
	out = append(out, goalSuggestions(in, now)...)
	out = append(out, remoteSuggestions(in, now)...)

	slices.SortStableFunc(out, func(a, b domain.InlineSuggestion) int {
		return a.Severity.Rank() - b.Severity.Rank()
	})
	return out
}

func grammarSuggestions(in Input, now time.Time) []domain.InlineSuggestion {
	ranked := slices.Clone(in.Grammar)
	slices.SortStableFunc(ranked, func(a, b domain.GrammarSuggestion) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	if len(ranked) > MaxGrammar {
		ranked = ranked[:MaxGrammar]
	}

	out := make([]domain.InlineSuggestion, 0, len(ranked))
	for _, g := range ranked {
		out = append(out, domain.InlineSuggestion{
			ID:         uuid.New().String(),
			Kind:       domain.KindGrammar,
			Severity:   g.Severity,
			Text:       g.Message,
			Position:   clampPosition(in.Content, g.Position),
			Preview:    g.SuggestedText,
			Confidence: g.Confidence,
			Source:     domain.SourceGrammar,
			Payload:    domain.GrammarPayload{Suggestion: g},
			CreatedAt:  now,
		})
	}
	return out
}

func styleSuggestions(in Input, now time.Time) []domain.InlineSuggestion {
	if in.Style == nil {
		return nil
	}
	recs := in.Style.Recommendations
	if len(recs) > MaxStyle {
		recs = recs[:MaxStyle]
	}

	out := make([]domain.InlineSuggestion, 0, len(recs))
	for _, r := range recs {
		severity := domain.SeveritySuggestion
		if r.Priority == domain.PriorityHigh {
			severity = domain.SeverityWarning
		}
		out = append(out, domain.InlineSuggestion{
			ID:         uuid.New().String(),
			Kind:       domain.KindStyle,
			Severity:   severity,
			Text:       r.Description,
			Position:   domain.PositionAt(in.Content, 0, 0),
			Confidence: 0.7,
			Source:     domain.SourceStyle,
			Payload:    domain.StylePayload{Recommendation: r},
			CreatedAt:  now,
		})
	}
	return out
}

func goalSuggestions(in Input, now time.Time) []domain.InlineSuggestion {
	ids := make([]string, 0, len(in.Goals))
	for id := range in.Goals {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var out []domain.InlineSuggestion
	for _, id := range ids {
		p := in.Goals[id]
		if p.IsAchieved || p.Progress < MinGoalProgress {
			continue
		}
		out = append(out, domain.InlineSuggestion{
			ID:         uuid.New().String(),
			Kind:       domain.KindGoal,
			Severity:   domain.SeveritySuggestion,
			Text:       fmt.Sprintf("%s: %d%% complete. %s", p.GoalName, p.Progress, p.Feedback),
			Position:   domain.PositionAt(in.Content, 0, 0),
			Confidence: float64(p.Progress) / 100,
			Source:     domain.SourceGoals,
			Payload:    domain.GoalPayload{Progress: p},
			CreatedAt:  now,
		})
	}
	return out
}

func remoteSuggestions(in Input, now time.Time) []domain.InlineSuggestion {
	limit := in.MaxRemote
	if limit <= 0 {
		limit = domain.DefaultMaxPerType
	}
	remote := in.Remote
	if len(remote) > limit {
		remote = remote[:limit]
	}

	out := make([]domain.InlineSuggestion, 0, len(remote))
	for _, w := range remote {
		severity := w.Severity
		if !severity.IsValid() {
			severity = domain.SeveritySuggestion
		}
		out = append(out, domain.InlineSuggestion{
			ID:         uuid.New().String(),
			Kind:       remoteKind(w.Type),
			Severity:   severity,
			Text:       w.Message,
			Position:   clampPosition(in.Content, w.Position),
			Preview:    w.SuggestedText,
			Confidence: w.Confidence,
			Source:     domain.SourceRemote,
			Payload:    domain.RemotePayload{Suggestion: w},
			CreatedAt:  now,
		})
	}
	return out
}

// remoteKind maps a remote suggestion type onto an inline kind. Unknown types are style.
func remoteKind(typ string) domain.SuggestionKind {
	switch domain.SuggestionKind(typ) {
	case domain.KindGrammar, domain.KindClarity, domain.KindGoal:
		return domain.SuggestionKind(typ)
	default:
		return domain.KindStyle
	}
}

// clampPosition keeps a position inside content, recomputing line and column if it had to move.
func clampPosition(content string, p domain.Position) domain.Position {
	if p.IsValid(len(content)) && p.Line > 0 {
		return p
	}
	return domain.PositionAt(content, p.Start, p.End)
}
