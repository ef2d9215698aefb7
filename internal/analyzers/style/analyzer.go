// Package style estimates readability, tone, voice and consistency of prose
// and turns them into prioritized recommendations.
package style

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/custodia-labs/inkwell/internal/analyzers/readability"
	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// Recommendation categories.
const (
	CategoryReadability    = "readability"
	CategoryConsistency    = "consistency"
	CategorySentenceLength = "sentence_length"
	CategoryVoice          = "voice"
)

var clauseMarker = regexp.MustCompile(
	`(?i)\b(?:which|that|who|whom|whose|because|although|though|while|since|unless|whereas|if|when|after|before)\b|[;,]`)

// Config selects which parts of the analysis run.
type Config struct {
	Readability     bool
	Tone            bool
	Voice           bool
	Consistency     bool
	Recommendations bool
}

// DefaultConfig enables every part of the analysis.
func DefaultConfig() Config {
	return Config{
		Readability:     true,
		Tone:            true,
		Voice:           true,
		Consistency:     true,
		Recommendations: true,
	}
}

// Analyzer produces style reports.
type Analyzer struct {
	config Config
}

// New creates a style analyzer.
func New(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze builds the style report for text.
// It never panics; an internal failure returns domain.DefaultStyleResult.
func (a *Analyzer) Analyze(text string) (result *domain.StyleAnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("style analysis recovered from panic: %v", r)
			result = domain.DefaultStyleResult()
		}
	}()

	result = domain.DefaultStyleResult()

	sentences := readability.Sentences(text)
	words := NormalizeWords(text)
	tokens := readability.Words(text)

	result.WordCount = len(tokens)
	result.SentenceCount = len(sentences)
	if len(sentences) > 0 {
		result.AverageSentenceLength = float64(len(tokens)) / float64(len(sentences))
	}
	result.AverageWordLength = averageWordLength(tokens)
	result.Complexity = complexityLevel(result.AverageWordLength)
	result.SyntacticComplexity = syntacticComplexity(text, len(sentences))

	if a.config.Readability {
		result.Readability = readability.Analyze(text)
	}
	if a.config.Tone {
		result.Tone = analyzeTone(words)
	}
	if a.config.Voice {
		result.Voice = analyzeVoice(text, words, len(sentences))
	}
	if a.config.Consistency {
		result.Consistency = analyzeConsistency(words, sentences)
	}
	if a.config.Recommendations && len(tokens) > 0 {
		result.Recommendations = recommend(result)
	}
	return result
}

func averageWordLength(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	letters := 0
	for _, t := range tokens {
		for _, r := range t {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters++
			}
		}
	}
	return float64(letters) / float64(len(tokens))
}

func complexityLevel(avgWordLength float64) domain.ComplexityLevel {
	switch {
	case avgWordLength < 4.5:
		return domain.ComplexitySimple
	case avgWordLength < 5.5:
		return domain.ComplexityModerate
	case avgWordLength < 6.5:
		return domain.ComplexityComplex
	default:
		return domain.ComplexityVeryComplex
	}
}

// syntacticComplexity scores clause markers per sentence on a 0-100 scale.
func syntacticComplexity(text string, sentences int) float64 {
	if sentences == 0 {
		return 0
	}
	perSentence := float64(len(clauseMarker.FindAllStringIndex(text, -1))) / float64(sentences)
	return min(100, perSentence*25)
}

// recommend derives recommendations from a filled-in result, sorted high to low priority.
func recommend(r *domain.StyleAnalysisResult) []domain.StyleRecommendation {
	var recs []domain.StyleRecommendation

	if r.Readability.Words > 0 {
		switch ease := r.Readability.FleschReadingEase; {
		case ease < 30:
			recs = append(recs, domain.StyleRecommendation{
				Category:    CategoryReadability,
				Priority:    domain.PriorityHigh,
				Description: fmt.Sprintf("Text is very difficult to read (Flesch %.0f). Use shorter words and sentences.", ease),
				Examples:    []string{"Replace 'utilize' with 'use'", "Split sentences joined by 'and' or 'but'"},
			})
		case ease < 50:
			recs = append(recs, domain.StyleRecommendation{
				Category:    CategoryReadability,
				Priority:    domain.PriorityMedium,
				Description: fmt.Sprintf("Text is fairly difficult to read (Flesch %.0f). Consider simpler phrasing.", ease),
			})
		}
	}

	if issues := r.Consistency.Issues; len(issues) > 0 {
		priority := domain.PriorityMedium
		if r.Consistency.Score < 70 {
			priority = domain.PriorityHigh
		}
		examples := make([]string, 0, len(issues))
		for _, issue := range issues {
			examples = append(examples, issue.Description)
		}
		recs = append(recs, domain.StyleRecommendation{
			Category:    CategoryConsistency,
			Priority:    priority,
			Description: fmt.Sprintf("Resolve %d consistency issue(s) (score %.0f).", len(issues), r.Consistency.Score),
			Examples:    examples,
		})
	}

	switch avg := r.AverageSentenceLength; {
	case avg > 25:
		recs = append(recs, domain.StyleRecommendation{
			Category:    CategorySentenceLength,
			Priority:    domain.PriorityMedium,
			Description: fmt.Sprintf("Average sentence length is %.0f words. Break up long sentences.", avg),
		})
	case avg < 8 && r.SentenceCount >= 3:
		recs = append(recs, domain.StyleRecommendation{
			Category:    CategorySentenceLength,
			Priority:    domain.PriorityLow,
			Description: "Sentences are very short. Combine some for better flow.",
		})
	}

	switch r.Voice.Voice {
	case domain.VoicePassive:
		recs = append(recs, domain.StyleRecommendation{
			Category:    CategoryVoice,
			Priority:    domain.PriorityHigh,
			Description: "Passive voice dominates. Rewrite so the subject performs the action.",
			Examples:    []string{"'The door was opened by Sam' -> 'Sam opened the door'"},
		})
	case domain.VoiceMixed:
		recs = append(recs, domain.StyleRecommendation{
			Category:    CategoryVoice,
			Priority:    domain.PriorityMedium,
			Description: "Some sentences use passive voice. Prefer active voice where possible.",
		})
	}

	slices.SortStableFunc(recs, func(a, b domain.StyleRecommendation) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return recs
}

// Summary returns a one-line description of a result for logs and reports.
func Summary(r *domain.StyleAnalysisResult) string {
	if r == nil {
		return ""
	}
	parts := []string{
		string(r.Complexity),
		r.Tone.Primary,
		string(r.Voice.Voice),
		string(r.Voice.Perspective),
	}
	return strings.Join(parts, ", ")
}
