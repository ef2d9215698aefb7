// Package readability implements the standard readability formulas
// (Flesch, Flesch-Kincaid, Gunning Fog, SMOG, ARI) over plain prose.
package readability

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// WordsPerMinute is the average adult silent reading speed.
const WordsPerMinute = 238

// ComplexSyllables is the syllable count at which a word counts as complex.
const ComplexSyllables = 3

var (
	silentSuffix = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingY     = regexp.MustCompile(`^y`)
	vowelGroup   = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// Analyze computes every readability score for text.
// Text with no sentences or no words scores zero everywhere.
func Analyze(text string) domain.ReadabilityScores {
	sentences := Sentences(text)
	words := Words(text)
	if len(sentences) == 0 || len(words) == 0 {
		return domain.ReadabilityScores{}
	}

	var syllables, complexWords, letters int
	for _, w := range words {
		n := CountSyllables(w)
		syllables += n
		if n >= ComplexSyllables {
			complexWords++
		}
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
			}
		}
	}

	s := float64(len(sentences))
	w := float64(len(words))
	wordsPerSentence := w / s
	syllablesPerWord := float64(syllables) / w

	scores := domain.ReadabilityScores{
		FleschReadingEase:         clamp(206.835-1.015*wordsPerSentence-84.6*syllablesPerWord, 0, 100),
		FleschKincaidGrade:        nonNegative(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59),
		GunningFog:                nonNegative(0.4 * (wordsPerSentence + 100*float64(complexWords)/w)),
		SMOG:                      nonNegative(1.043*math.Sqrt(float64(complexWords)*30/s) + 3.1291),
		AutomatedReadabilityIndex: nonNegative(4.71*(float64(letters)/w) + 0.5*wordsPerSentence - 21.43),
		Sentences:                 len(sentences),
		Words:                     len(words),
		Syllables:                 syllables,
		ComplexWords:              complexWords,
		Letters:                   letters,
	}
	scores.GradeLevel = GradeLevel(scores.FleschKincaidGrade)
	return scores
}

// Sentences splits text on '.', '!' and '?' and returns the trimmed, non-empty parts.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Words returns the whitespace-separated tokens of text.
func Words(text string) []string {
	return strings.Fields(text)
}

// CountSyllables estimates the syllables in a single word.
// Words of three letters or fewer count as one syllable.
func CountSyllables(word string) int {
	word = lettersOnly(word)
	if len(word) <= 3 {
		return 1
	}

	word = silentSuffix.ReplaceAllString(word, "")
	word = leadingY.ReplaceAllString(word, "")

	if n := len(vowelGroup.FindAllStringIndex(word, -1)); n > 0 {
		return n
	}
	return 1
}

// GradeLevel labels a Flesch-Kincaid grade.
func GradeLevel(grade float64) string {
	switch {
	case grade < 6:
		return "elementary"
	case grade < 9:
		return "middle_school"
	case grade < 13:
		return "high_school"
	case grade < 16:
		return "college"
	default:
		return "graduate"
	}
}

// ReadingTime estimates how long words take to read.
func ReadingTime(words int) time.Duration {
	if words <= 0 {
		return 0
	}
	return time.Duration(float64(words) / WordsPerMinute * float64(time.Minute))
}

func lettersOnly(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func nonNegative(v float64) float64 {
	return math.Max(0, v)
}
