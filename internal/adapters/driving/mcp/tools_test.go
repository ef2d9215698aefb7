package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

func newTestServer(t *testing.T, coord *mockCoordinator) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Coordinator: coord})
	require.NoError(t, err)
	return server
}

func TestServer_handleAnalyzeText(t *testing.T) {
	ctx := context.Background()

	t.Run("maps analysis results", func(t *testing.T) {
		coord := newMockCoordinator(&domain.AnalysisResults{
			WordCount:   12,
			Completed:   []domain.AnalysisKind{domain.AnalysisStyle, domain.AnalysisReadability},
			Failures:    map[domain.AnalysisKind]string{domain.AnalysisGrammar: "boom"},
			Readability: &domain.ReadabilityScores{FleschReadingEase: 72.5, GradeLevel: "7th grade", Words: 12},
			Style: &domain.StyleAnalysisResult{
				Complexity:      domain.ComplexityModerate,
				Tone:            domain.ToneAnalysis{Primary: "melancholic"},
				Voice:           domain.VoiceAnalysis{Voice: domain.VoiceActive, Perspective: domain.PerspectiveFirst, Tense: domain.TensePast},
				Consistency:     domain.ConsistencyReport{Score: 92},
				Recommendations: []domain.StyleRecommendation{{Description: "Vary sentence length"}},
			},
			Clarity: &domain.ClarityMetrics{OverallScore: 81},
			Inline: []domain.InlineSuggestion{{
				ID:         "s1",
				Kind:       domain.KindGrammar,
				Severity:   domain.SeverityError,
				Text:       "Possible spelling mistake",
				Position:   domain.Position{Line: 2, Column: 5},
				Confidence: 0.9,
			}},
			Goals: map[string]domain.GoalProgress{
				"g1": {GoalName: "Short chapter", Progress: 100, IsAchieved: true, Feedback: "Goal achieved!"},
			},
		})
		server := newTestServer(t, coord)

		_, output, err := server.handleAnalyzeText(ctx, nil, AnalyzeTextInput{Text: "Teh rain fell."})

		require.NoError(t, err)
		assert.Equal(t, 12, output.WordCount)
		assert.Equal(t, []string{"style", "readability"}, output.Completed)
		assert.Equal(t, "boom", output.Failures["grammar"])
		require.NotNil(t, output.Readability)
		assert.Equal(t, 72.5, output.Readability.FleschReadingEase)
		require.NotNil(t, output.Style)
		assert.Equal(t, "melancholic", output.Style.Tone)
		assert.Equal(t, "first_person", output.Style.Perspective)
		assert.Equal(t, []string{"Vary sentence length"}, output.Style.Recommendations)
		assert.Equal(t, 81.0, output.Clarity)
		require.Len(t, output.Suggestions, 1)
		assert.Equal(t, "grammar", output.Suggestions[0].Kind)
		assert.Equal(t, 2, output.Suggestions[0].Line)
		require.Len(t, output.Goals, 1)
		assert.True(t, output.Goals[0].Achieved)

		assert.Equal(t, []string{"Teh rain fell."}, coord.texts)
		assert.Empty(t, coord.kinds[0])
	})

	t.Run("passes requested kinds", func(t *testing.T) {
		coord := newMockCoordinator(nil)
		server := newTestServer(t, coord)

		_, _, err := server.handleAnalyzeText(ctx, nil, AnalyzeTextInput{Text: "x", Kinds: []string{" Style ", "goals"}})

		require.NoError(t, err)
		assert.Equal(t, []domain.AnalysisKind{domain.AnalysisStyle, domain.AnalysisGoals}, coord.kinds[0])
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		coord := newMockCoordinator(nil)
		server := newTestServer(t, coord)

		_, _, err := server.handleAnalyzeText(ctx, nil, AnalyzeTextInput{Text: "x", Kinds: []string{"tone"}})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, coord.texts)
	})

	t.Run("returns analysis error", func(t *testing.T) {
		coord := newMockCoordinator(nil)
		coord.err = errors.New("analysis failed")
		server := newTestServer(t, coord)

		_, _, err := server.handleAnalyzeText(ctx, nil, AnalyzeTextInput{Text: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "analysis failed")
	})
}

func TestServer_handleCheckGrammar(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grammar issues", func(t *testing.T) {
		coord := newMockCoordinator(&domain.AnalysisResults{
			Completed: []domain.AnalysisKind{domain.AnalysisGrammar},
			Grammar: []domain.GrammarSuggestion{{
				Type:          domain.GrammarSpelling,
				Severity:      domain.SeverityError,
				OriginalText:  "Teh",
				SuggestedText: "The",
				Message:       "Possible spelling mistake",
				Position:      domain.Position{Start: 0, End: 3, Line: 1, Column: 1},
				Confidence:    0.95,
			}},
			Clarity: &domain.ClarityMetrics{OverallScore: 70},
		})
		server := newTestServer(t, coord)

		_, output, err := server.handleCheckGrammar(ctx, nil, TextInput{Text: "Teh cat sat."})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "spelling", output.Issues[0].Type)
		assert.Equal(t, "The", output.Issues[0].SuggestedText)
		assert.Equal(t, 70.0, output.Clarity)
		assert.Equal(t, []domain.AnalysisKind{domain.AnalysisGrammar}, coord.kinds[0])
	})

	t.Run("reports grammar failure", func(t *testing.T) {
		coord := newMockCoordinator(&domain.AnalysisResults{
			Failures: map[domain.AnalysisKind]string{domain.AnalysisGrammar: "panic"},
		})
		server := newTestServer(t, coord)

		_, _, err := server.handleCheckGrammar(ctx, nil, TextInput{Text: "x"})

		assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
	})

	t.Run("reports disabled analysis", func(t *testing.T) {
		coord := newMockCoordinator(nil)
		coord.config.EnableGrammar = false
		server := newTestServer(t, coord)

		_, _, err := server.handleCheckGrammar(ctx, nil, TextInput{Text: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})
}

func TestServer_handleReadability(t *testing.T) {
	ctx := context.Background()

	t.Run("returns scores", func(t *testing.T) {
		coord := newMockCoordinator(&domain.AnalysisResults{
			Completed:   []domain.AnalysisKind{domain.AnalysisReadability},
			Readability: &domain.ReadabilityScores{FleschKincaidGrade: 3.2, SMOG: 4.1, Sentences: 2, Words: 9},
		})
		server := newTestServer(t, coord)

		_, output, err := server.handleReadability(ctx, nil, TextInput{Text: "The cat sat. The dog ran away fast."})

		require.NoError(t, err)
		assert.Equal(t, 3.2, output.FleschKincaidGrade)
		assert.Equal(t, 4.1, output.SMOG)
		assert.Equal(t, 9, output.Words)
	})

	t.Run("empty text yields zero scores", func(t *testing.T) {
		server := newTestServer(t, newMockCoordinator(nil))

		_, output, err := server.handleReadability(ctx, nil, TextInput{})

		require.NoError(t, err)
		assert.Zero(t, output)
	})
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds(nil)
	require.NoError(t, err)
	assert.Empty(t, kinds)

	kinds, err = parseKinds([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, []domain.AnalysisKind{domain.AnalysisAll}, kinds)

	_, err = parseKinds([]string{"grammar", "mood", "pace"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mood"`)
	assert.Contains(t, err.Error(), `"pace"`)
}
