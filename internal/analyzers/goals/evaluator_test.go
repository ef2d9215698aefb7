package goals

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// mockStyle returns a fixed result and counts calls.
type mockStyle struct {
	mu     sync.Mutex
	calls  int
	result *domain.StyleAnalysisResult
}

func (m *mockStyle) Analyze(_ string) *domain.StyleAnalysisResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.result
}

func newMockStyle() *mockStyle {
	r := domain.DefaultStyleResult()
	r.Tone = domain.ToneAnalysis{Primary: "dark", Intensity: 60}
	r.Readability = domain.ReadabilityScores{FleschReadingEase: 65, FleschKincaidGrade: 7, GradeLevel: "middle_school"}
	r.AverageSentenceLength = 12
	return &mockStyle{result: r}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// ==================== Evaluate Tests ====================

func TestEvaluate_NoTargets(t *testing.T) {
	e := New(newMockStyle())
	got := e.Evaluate([]domain.WritingGoal{{ID: "g1", Name: "Empty", Active: true}}, "Some text.")

	require.Contains(t, got, "g1")
	p := got["g1"]
	assert.Equal(t, 100, p.Progress)
	assert.True(t, p.IsAchieved)
	assert.Empty(t, p.Metrics)
	assert.Equal(t, FeedbackAchieved, p.Feedback)
	assert.Equal(t, "Empty", p.GoalName)
}

func TestEvaluate_SkipsInactive(t *testing.T) {
	e := New(newMockStyle())
	got := e.Evaluate([]domain.WritingGoal{
		{ID: "on", Active: true},
		{ID: "off", Active: false},
	}, "text")

	assert.Contains(t, got, "on")
	assert.NotContains(t, got, "off")
}

func TestEvaluate_VocabularyAchieved(t *testing.T) {
	e := New(newMockStyle())
	goal := domain.WritingGoal{
		ID:               "vocab",
		Active:           true,
		TargetVocabulary: &domain.VocabularyTarget{MinVocabularyDiversity: 0.6},
	}

	p := e.Evaluate([]domain.WritingGoal{goal}, "one two three four five six one two three four")["vocab"]

	require.Len(t, p.Metrics, 1)
	assert.InDelta(t, 0.6, p.Metrics[0].Current, 0.0001)
	assert.Equal(t, domain.MetricAchieved, p.Metrics[0].Status)
	assert.Equal(t, 100, p.Progress)
	assert.True(t, p.IsAchieved)
}

func TestEvaluate_VocabularyAchieving(t *testing.T) {
	e := New(newMockStyle())
	goal := domain.WritingGoal{
		ID:               "vocab",
		Active:           true,
		TargetVocabulary: &domain.VocabularyTarget{MinVocabularyDiversity: 0.7},
	}

	p := e.Evaluate([]domain.WritingGoal{goal}, "one two three four five six one two three four")["vocab"]
	assert.Equal(t, domain.MetricAchieving, p.Metrics[0].Status)
	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, FeedbackContinuing, p.Feedback)
}

func TestEvaluate_StyleComputedLazilyOnce(t *testing.T) {
	ms := newMockStyle()
	e := New(ms)

	e.Evaluate([]domain.WritingGoal{
		{ID: "len", Active: true, TargetLength: &domain.LengthTarget{TargetWords: 10}},
	}, words(10))
	assert.Equal(t, 0, ms.calls, "length alone needs no style analysis")

	e.Evaluate([]domain.WritingGoal{
		{ID: "a", Active: true, TargetTone: &domain.ToneTarget{Primary: "dark"}},
		{ID: "b", Active: true, TargetReadability: &domain.ReadabilityTarget{MinScore: 60}},
		{ID: "c", Active: true, TargetPacing: &domain.PacingTarget{MinSentenceLength: 10, MaxSentenceLength: 20}},
	}, words(10))
	assert.Equal(t, 1, ms.calls)
}

func TestEvaluate_ProgressRounding(t *testing.T) {
	e := New(newMockStyle())
	goal := domain.WritingGoal{
		ID:     "mix",
		Active: true,
		// achieved
		TargetTone: &domain.ToneTarget{Primary: "Dark"},
		// achieved
		TargetReadability: &domain.ReadabilityTarget{MinScore: 60, MaxScore: 70},
		// below
		TargetLength: &domain.LengthTarget{TargetWords: 100},
	}

	p := e.Evaluate([]domain.WritingGoal{goal}, words(10))["mix"]

	assert.Len(t, p.Metrics, 3)
	assert.Equal(t, 67, p.Progress)
	assert.False(t, p.IsAchieved)
	assert.Equal(t, "Focus on improving: Word count.", p.Feedback)
}

func TestEvaluate_FeedbackNamesTwoBelowMetrics(t *testing.T) {
	e := New(newMockStyle())
	goal := domain.WritingGoal{
		ID:                "g",
		Active:            true,
		TargetReadability: &domain.ReadabilityTarget{MinScore: 80, GradeLevel: "college"},
		TargetLength:      &domain.LengthTarget{MinWords: 500},
	}

	p := e.Evaluate([]domain.WritingGoal{goal}, words(10))["g"]

	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, "Focus on improving: Readability and Grade level.", p.Feedback)
}

func TestEvaluate_AlmostThere(t *testing.T) {
	ms := newMockStyle()
	e := New(ms)
	goal := domain.WritingGoal{
		ID:                "g",
		Active:            true,
		TargetTone:        &domain.ToneTarget{Primary: "dark"},
		TargetReadability: &domain.ReadabilityTarget{MinScore: 60, GradeLevel: "middle_school"},
		TargetLength:      &domain.LengthTarget{MinWords: 5},
		TargetStyle:       &domain.StyleTarget{Voice: domain.VoicePassive},
	}

	p := e.Evaluate([]domain.WritingGoal{goal}, words(10))["g"]

	assert.Equal(t, 80, p.Progress)
	assert.True(t, p.IsAchieved)
	assert.Equal(t, FeedbackAlmost, p.Feedback)
}

// ==================== Metric Tests ====================

func metricStatus(t *testing.T, goal domain.WritingGoal, content string) domain.MetricStatus {
	t.Helper()
	goal.ID = "g"
	goal.Active = true
	p := New(newMockStyle()).Evaluate([]domain.WritingGoal{goal}, content)["g"]
	require.Len(t, p.Metrics, 1)
	return p.Metrics[0].Status
}

func TestReadabilityMetric(t *testing.T) {
	assert.Equal(t, domain.MetricAchieved, metricStatus(t, domain.WritingGoal{
		TargetReadability: &domain.ReadabilityTarget{MinScore: 65, MaxScore: 65},
	}, "x"), "bounds are inclusive")
	assert.Equal(t, domain.MetricExceeded, metricStatus(t, domain.WritingGoal{
		TargetReadability: &domain.ReadabilityTarget{MinScore: 30, MaxScore: 50},
	}, "x"))
	assert.Equal(t, domain.MetricBelow, metricStatus(t, domain.WritingGoal{
		TargetReadability: &domain.ReadabilityTarget{MinScore: 70},
	}, "x"))
	assert.Equal(t, domain.MetricAchieved, metricStatus(t, domain.WritingGoal{
		TargetReadability: &domain.ReadabilityTarget{MinScore: 60},
	}, "x"), "zero max means 100")
}

func TestLengthMetric(t *testing.T) {
	tests := []struct {
		name     string
		target   domain.LengthTarget
		words    int
		expected domain.MetricStatus
	}{
		{"target reached", domain.LengthTarget{TargetWords: 10}, 12, domain.MetricAchieved},
		{"target 80 percent", domain.LengthTarget{TargetWords: 10}, 8, domain.MetricAchieving},
		{"target short", domain.LengthTarget{TargetWords: 10}, 7, domain.MetricBelow},
		{"range inside", domain.LengthTarget{MinWords: 5, MaxWords: 10}, 10, domain.MetricAchieved},
		{"range above", domain.LengthTarget{MinWords: 5, MaxWords: 10}, 11, domain.MetricExceeded},
		{"range below", domain.LengthTarget{MinWords: 5, MaxWords: 10}, 4, domain.MetricBelow},
		{"unbounded max", domain.LengthTarget{MinWords: 5}, 500, domain.MetricAchieved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			assert.Equal(t, tt.expected, metricStatus(t, domain.WritingGoal{TargetLength: &target}, words(tt.words)))
		})
	}
}

func TestToneMetric(t *testing.T) {
	tests := []struct {
		name     string
		target   domain.ToneTarget
		expected domain.MetricStatus
	}{
		{"match without intensity", domain.ToneTarget{Primary: "DARK"}, domain.MetricAchieved},
		{"match within tolerance", domain.ToneTarget{Primary: "dark", Intensity: 45}, domain.MetricAchieved},
		{"match outside tolerance", domain.ToneTarget{Primary: "dark", Intensity: 80}, domain.MetricAchieving},
		{"mismatch", domain.ToneTarget{Primary: "joyful"}, domain.MetricBelow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			assert.Equal(t, tt.expected, metricStatus(t, domain.WritingGoal{TargetTone: &target}, "x"))
		})
	}
}

func TestStyleMetrics(t *testing.T) {
	p := New(newMockStyle()).EvaluateGoal(domain.WritingGoal{
		ID: "s",
		TargetStyle: &domain.StyleTarget{
			Voice:       domain.VoiceActive,
			Perspective: domain.PerspectiveFirst,
		},
	}, "x")

	require.Len(t, p.Metrics, 2)
	assert.Equal(t, domain.MetricAchieved, p.Metrics[0].Status)
	assert.Equal(t, domain.MetricBelow, p.Metrics[1].Status)
	assert.Equal(t, 50, p.Progress)
}

func TestPacingMetric(t *testing.T) {
	// mock average sentence length is 12
	tests := []struct {
		name     string
		target   domain.PacingTarget
		expected domain.MetricStatus
	}{
		{"inside", domain.PacingTarget{MinSentenceLength: 10, MaxSentenceLength: 15}, domain.MetricAchieved},
		{"slightly short", domain.PacingTarget{MinSentenceLength: 14, MaxSentenceLength: 20}, domain.MetricAchieving},
		{"slightly long", domain.PacingTarget{MinSentenceLength: 5, MaxSentenceLength: 11}, domain.MetricAchieving},
		{"far too long", domain.PacingTarget{MinSentenceLength: 2, MaxSentenceLength: 6}, domain.MetricBelow},
		{"no max", domain.PacingTarget{MinSentenceLength: 8}, domain.MetricAchieved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			assert.Equal(t, tt.expected, metricStatus(t, domain.WritingGoal{TargetPacing: &target}, "x"))
		})
	}
}

func TestVocabularyDiversity(t *testing.T) {
	assert.Equal(t, 0.0, VocabularyDiversity(""))
	assert.Equal(t, 0.0, VocabularyDiversity("... !!!"))
	assert.Equal(t, 0.5, VocabularyDiversity("The the CAT cat."))
	assert.Equal(t, 1.0, VocabularyDiversity("don't stop"))
}

func TestNew_DefaultStyleAnalyzer(t *testing.T) {
	p := New(nil).EvaluateGoal(domain.WritingGoal{
		ID:         "real",
		TargetTone: &domain.ToneTarget{Primary: "neutral"},
	}, "The table has four legs.")

	assert.True(t, p.IsAchieved)
}
