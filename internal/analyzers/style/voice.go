package style

import (
	"regexp"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// PassivePattern matches a form of "to be" followed by a past participle.
var PassivePattern = regexp.MustCompile(`(?i)\b(?:am|is|are|was|were|be|been|being)\s+\w+(?:ed|en)\b`)

// Passive ratio thresholds (passive matches per sentence).
const (
	passiveThreshold = 0.30
	mixedThreshold   = 0.15
)

var (
	firstPerson  = wordSet("i", "me", "my", "mine", "myself", "we", "us", "our", "ours", "ourselves")
	secondPerson = wordSet("you", "your", "yours", "yourself", "yourselves")
	thirdPerson  = wordSet("he", "him", "his", "himself", "she", "her", "hers", "herself",
		"they", "them", "their", "theirs", "themselves", "it", "its")

	pastMarkers    = wordSet("was", "were", "had", "did", "said", "went", "came", "saw", "thought", "felt")
	presentMarkers = wordSet("is", "are", "am", "has", "does", "says", "goes", "comes", "sees", "thinks", "feels")
	futureMarkers  = wordSet("will", "shall", "won't", "gonna")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// tenseCounts holds marker counts per tense.
type tenseCounts struct {
	past, present, future int
}

func (c tenseCounts) total() int {
	return c.past + c.present + c.future
}

// personCounts holds pronoun counts per narrative person.
type personCounts struct {
	first, second, third int
}

func countTense(words []string) tenseCounts {
	var c tenseCounts
	for _, w := range words {
		if _, ok := pastMarkers[w]; ok {
			c.past++
		} else if len(w) > 4 && w[len(w)-2:] == "ed" {
			c.past++
		}
		if _, ok := presentMarkers[w]; ok {
			c.present++
		}
		if _, ok := futureMarkers[w]; ok {
			c.future++
		}
	}
	return c
}

func countPerson(words []string) personCounts {
	var c personCounts
	for _, w := range words {
		if _, ok := firstPerson[w]; ok {
			c.first++
		}
		if _, ok := secondPerson[w]; ok {
			c.second++
		}
		if _, ok := thirdPerson[w]; ok {
			c.third++
		}
	}
	return c
}

// analyzeVoice classifies voice, perspective and tense.
func analyzeVoice(text string, words []string, sentences int) domain.VoiceAnalysis {
	va := domain.VoiceAnalysis{
		Voice:       domain.VoiceActive,
		Perspective: dominantPerspective(countPerson(words)),
		Tense:       dominantTense(countTense(words)),
	}
	if sentences == 0 {
		return va
	}

	va.PassiveRatio = float64(len(PassivePattern.FindAllStringIndex(text, -1))) / float64(sentences)
	switch {
	case va.PassiveRatio > passiveThreshold:
		va.Voice = domain.VoicePassive
	case va.PassiveRatio > mixedThreshold:
		va.Voice = domain.VoiceMixed
	}
	return va
}

// dominantPerspective picks the most used person; third person wins ties and empty text.
func dominantPerspective(c personCounts) domain.Perspective {
	switch {
	case c.first > c.third && c.first >= c.second:
		return domain.PerspectiveFirst
	case c.second > c.third && c.second > c.first:
		return domain.PerspectiveSecond
	default:
		return domain.PerspectiveThird
	}
}

// dominantTense picks the most marked tense. Equal non-zero leaders are mixed; no markers is past.
func dominantTense(c tenseCounts) domain.Tense {
	if c.total() == 0 {
		return domain.TensePast
	}
	best, bestN, tie := domain.TensePast, c.past, false
	for _, cand := range []struct {
		tense domain.Tense
		n     int
	}{{domain.TensePresent, c.present}, {domain.TenseFuture, c.future}} {
		switch {
		case cand.n > bestN:
			best, bestN, tie = cand.tense, cand.n, false
		case cand.n == bestN:
			tie = true
		}
	}
	if tie {
		return domain.TenseMixed
	}
	return best
}
