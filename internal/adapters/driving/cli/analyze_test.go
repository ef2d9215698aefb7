package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/normalisers"
	"github.com/custodia-labs/inkwell/internal/normalisers/markdown"
	"github.com/custodia-labs/inkwell/internal/normalisers/plaintext"
)

// ==================== Analyze Tests ====================

func TestAnalyze_NoCoordinator(t *testing.T) {
	_, err := execute(t, nil, "text", "analyze")
	assert.ErrorIs(t, err, errNoCoordinator)
}

func TestAnalyze_Stdin(t *testing.T) {
	coord := &mockCoordinator{results: &domain.AnalysisResults{
		WordCount: 4,
		Readability: &domain.ReadabilityScores{
			FleschReadingEase: 90.5,
			GradeLevel:        "elementary",
		},
	}}

	out, err := execute(t, &Services{Coordinator: coord}, "The cat sat down.", "analyze", "--no-color")

	require.NoError(t, err)
	require.Len(t, coord.texts, 1)
	assert.Equal(t, "The cat sat down.", coord.texts[0])
	assert.Empty(t, coord.kinds[0])
	assert.Contains(t, out, "4 words")
	assert.Contains(t, out, "Readability")
	assert.Contains(t, out, "90.5")
}

func TestAnalyze_FileWithKinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapter-01.md")
	require.NoError(t, os.WriteFile(path, []byte("# Chapter One\n\nShe ran **fast**."), 0o600))

	coord := &mockCoordinator{}
	registry := normalisers.NewRegistry(plaintext.New(), markdown.New())

	_, err := execute(t, &Services{Coordinator: coord, Normalisers: registry}, "",
		"analyze", "--kinds", "grammar,Readability", path)

	require.NoError(t, err)
	require.Len(t, coord.texts, 1)
	assert.Contains(t, coord.texts[0], "She ran fast.")
	assert.NotContains(t, coord.texts[0], "**")
	assert.Equal(t, []domain.AnalysisKind{domain.AnalysisGrammar, domain.AnalysisReadability}, coord.kinds[0])
}

func TestAnalyze_UnknownKind(t *testing.T) {
	coord := &mockCoordinator{}
	_, err := execute(t, &Services{Coordinator: coord}, "text", "analyze", "--kinds", "tone")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, coord.texts)
}

func TestAnalyze_MissingFile(t *testing.T) {
	_, err := execute(t, &Services{Coordinator: &mockCoordinator{}}, "",
		"analyze", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestAnalyze_JSON(t *testing.T) {
	coord := &mockCoordinator{results: &domain.AnalysisResults{WordCount: 2, Duration: time.Millisecond}}

	out, err := execute(t, &Services{Coordinator: coord}, "Hello there", "analyze", "--json")

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.EqualValues(t, 2, decoded["word_count"])
}

func TestAnalyze_Error(t *testing.T) {
	coord := &mockCoordinator{err: errors.New("boom")}
	_, err := execute(t, &Services{Coordinator: coord}, "text", "analyze")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestAnalyze_LoadsActiveGoals(t *testing.T) {
	coord := &mockCoordinator{}
	goals := &mockGoalService{goals: []domain.WritingGoal{
		{ID: "a", Name: "Active", Active: true},
		{ID: "b", Name: "Inactive"},
	}}

	_, err := execute(t, &Services{Coordinator: coord, Goals: goals}, "text", "analyze")

	require.NoError(t, err)
	require.Len(t, coord.goals, 1)
	assert.Equal(t, "a", coord.goals[0].ID)
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{" style ", "GOALS"})
	require.NoError(t, err)
	assert.Equal(t, []domain.AnalysisKind{domain.AnalysisStyle, domain.AnalysisGoals}, kinds)

	kinds, err = parseKinds(nil)
	require.NoError(t, err)
	assert.Empty(t, kinds)

	_, err = parseKinds([]string{"sentiment"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ==================== Watch Tests ====================

func TestWatch_NoCoordinator(t *testing.T) {
	_, err := execute(t, nil, "", "watch", "chapter.md")
	assert.ErrorIs(t, err, errNoCoordinator)
}

func TestAnalysisChanged(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)

	tests := []struct {
		name string
		prev domain.AnalysisState
		next domain.AnalysisState
		want bool
	}{
		{name: "nothing yet", want: false},
		{name: "first analysis", next: domain.AnalysisState{LastAnalysis: t0}, want: true},
		{
			name: "same analysis",
			prev: domain.AnalysisState{LastAnalysis: t0},
			next: domain.AnalysisState{LastAnalysis: t0, Analyzing: true},
			want: false,
		},
		{
			name: "newer analysis",
			prev: domain.AnalysisState{LastAnalysis: t0},
			next: domain.AnalysisState{LastAnalysis: t1},
			want: true,
		},
		{
			name: "new error",
			prev: domain.AnalysisState{LastAnalysis: t0},
			next: domain.AnalysisState{LastAnalysis: t0, LastError: "style: failed"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysisChanged(tt.prev, tt.next))
		})
	}
}

func TestResultsFromState(t *testing.T) {
	state := domain.AnalysisState{
		LastContent: "One two three.",
		Clarity:     &domain.ClarityMetrics{OverallScore: 80},
		Suggestions: []domain.InlineSuggestion{{ID: "s1"}},
	}

	res := resultsFromState(state)

	assert.Equal(t, 3, res.WordCount)
	assert.Equal(t, state.Clarity, res.Clarity)
	assert.Len(t, res.Inline, 1)
}
