package readability

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "...", "\n\t"} {
		scores := Analyze(text)
		assert.Zero(t, scores.FleschReadingEase, "text %q", text)
		assert.Zero(t, scores.FleschKincaidGrade)
		assert.Zero(t, scores.GunningFog)
		assert.Zero(t, scores.SMOG)
		assert.Zero(t, scores.AutomatedReadabilityIndex)
		assert.Zero(t, scores.Words)
	}
}

func TestAnalyze_SimpleText(t *testing.T) {
	scores := Analyze("The cat sat on the mat.")

	assert.Equal(t, 1, scores.Sentences)
	assert.Equal(t, 6, scores.Words)
	assert.Equal(t, 6, scores.Syllables)
	assert.Equal(t, 0, scores.ComplexWords)
	assert.Equal(t, 100.0, scores.FleschReadingEase, "clamped to 100")
	assert.Equal(t, 0.0, scores.FleschKincaidGrade, "clamped to 0")
	assert.Equal(t, "elementary", scores.GradeLevel)
}

func TestAnalyze_ComplexTextScoresHarder(t *testing.T) {
	simple := Analyze("The dog ran. The sun was hot. We sat in the shade.")
	complex := Analyze("Institutional considerations necessitate comprehensive evaluation " +
		"of organizational responsibilities, particularly regarding administrative accountability.")

	assert.Greater(t, simple.FleschReadingEase, complex.FleschReadingEase)
	assert.Greater(t, complex.FleschKincaidGrade, simple.FleschKincaidGrade)
	assert.Greater(t, complex.GunningFog, simple.GunningFog)
	assert.Greater(t, complex.ComplexWords, 0)
	assert.Equal(t, "graduate", complex.GradeLevel)
}

func TestAnalyze_FleschBounds(t *testing.T) {
	texts := []string{
		"Go.",
		"I am. You are. We go.",
		"Notwithstanding extraordinarily unconventional circumstances, " +
			"interdepartmental communication deteriorated substantially.",
		strings.Repeat("A short line of text. ", 50),
		"Why? Because! Really.",
	}

	for _, text := range texts {
		scores := Analyze(text)
		assert.GreaterOrEqual(t, scores.FleschReadingEase, 0.0, text)
		assert.LessOrEqual(t, scores.FleschReadingEase, 100.0, text)
		assert.GreaterOrEqual(t, scores.FleschKincaidGrade, 0.0, text)
		assert.GreaterOrEqual(t, scores.GunningFog, 0.0, text)
		assert.GreaterOrEqual(t, scores.SMOG, 0.0, text)
		assert.GreaterOrEqual(t, scores.AutomatedReadabilityIndex, 0.0, text)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word     string
		expected int
	}{
		{"a", 1},
		{"the", 1},
		{"cat", 1},
		{"cake", 1},
		{"table", 2},
		{"running", 2},
		{"yellow", 2},
		{"jumped", 1},
		{"Hello,", 2},
		{"computer", 3},
		{"rhythm", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountSyllables(tt.word))
		})
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("One. Two!  Three?? \n Four")
	require.Len(t, got, 4)
	assert.Equal(t, []string{"One", "Two", "Three", "Four"}, got)
	assert.Empty(t, Sentences("  . ! ?"))
}

func TestGradeLevel(t *testing.T) {
	assert.Equal(t, "elementary", GradeLevel(5.9))
	assert.Equal(t, "middle_school", GradeLevel(6))
	assert.Equal(t, "high_school", GradeLevel(12.5))
	assert.Equal(t, "college", GradeLevel(13))
	assert.Equal(t, "graduate", GradeLevel(16))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, time.Duration(0), ReadingTime(0))
	assert.Equal(t, time.Minute, ReadingTime(WordsPerMinute))
}
