package grammar

import (
	"math"

	"github.com/custodia-labs/inkwell/internal/analyzers/readability"
	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Weights of the clarity components in the overall score.
const (
	weightSentenceComplexity = 0.3
	weightWordiness          = 0.25
	weightPassive            = 0.25
	weightComplexWords       = 0.2
)

// CalculateClarityMetrics scores how easy text is to follow.
// Component metrics rise with difficulty; OverallScore rises with clarity.
// Empty text returns zero metrics.
func CalculateClarityMetrics(text string) domain.ClarityMetrics {
	sentences := readability.Sentences(text)
	words := readability.Words(text)
	if len(sentences) == 0 || len(words) == 0 {
		return domain.ClarityMetrics{}
	}

	avgLen := float64(len(words)) / float64(len(sentences))

	complexWords := 0
	for _, w := range words {
		if readability.CountSyllables(w) >= readability.ComplexSyllables {
			complexWords++
		}
	}

	wordy := len(findPhrases(text, wordyPhrases, "%s")) + len(findPhrases(text, redundantPhrases, "%s"))
	passive := len(passiveVoice.FindAllStringIndex(text, -1))

	m := domain.ClarityMetrics{
		SentenceComplexity:    math.Min(100, avgLen/LongSentenceWords*100),
		Wordiness:             math.Min(100, float64(wordy)/float64(len(words))*1000),
		PassiveVoiceRatio:     math.Min(100, float64(passive)/float64(len(sentences))*100),
		ComplexWordRatio:      float64(complexWords) / float64(len(words)) * 100,
		AverageSentenceLength: avgLen,
	}
	penalty := weightSentenceComplexity*m.SentenceComplexity +
		weightWordiness*m.Wordiness +
		weightPassive*m.PassiveVoiceRatio +
		weightComplexWords*m.ComplexWordRatio
	m.OverallScore = math.Max(0, math.Min(100, 100-penalty))
	return m
}
