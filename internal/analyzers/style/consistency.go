package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Consistency issue types.
const (
	IssueTenseMixing       = "tense_mixing"
	IssuePerspectiveShift  = "perspective_shift"
	IssueSentenceVariety   = "sentence_variety"
	IssueRepetitiveOpening = "repetitive_opening"
	IssueSpellingVariant   = "spelling_variant"
)

// spellingPairs maps British spellings to their American forms.
var spellingPairs = [][2]string{
	{"colour", "color"},
	{"favourite", "favorite"},
	{"honour", "honor"},
	{"realise", "realize"},
	{"organise", "organize"},
	{"centre", "center"},
	{"theatre", "theater"},
	{"grey", "gray"},
	{"travelled", "traveled"},
	{"defence", "defense"},
}

// analyzeConsistency scores the text from 100 down by issue penalties.
func analyzeConsistency(words []string, sentences []string) domain.ConsistencyReport {
	var issues []domain.ConsistencyIssue

	tc := countTense(words)
	if total := tc.total(); total >= 4 {
		pastShare := float64(tc.past) / float64(total)
		presentShare := float64(tc.present) / float64(total)
		if pastShare >= 0.3 && presentShare >= 0.3 {
			issues = append(issues, domain.ConsistencyIssue{
				Type:     IssueTenseMixing,
				Severity: domain.IssueModerate,
				Description: fmt.Sprintf("Past and present tense are mixed (%d past, %d present markers)",
					tc.past, tc.present),
			})
		}
	}

	pc := countPerson(words)
	if narrative := pc.first + pc.third; narrative >= 4 {
		minority := min(pc.first, pc.third)
		if float64(minority)/float64(narrative) >= 0.25 {
			issues = append(issues, domain.ConsistencyIssue{
				Type:        IssuePerspectiveShift,
				Severity:    domain.IssueModerate,
				Description: "Narration shifts between first and third person",
			})
		}
	}

	if len(sentences) >= 5 && sentenceLengthStdDev(sentences) < 3 {
		issues = append(issues, domain.ConsistencyIssue{
			Type:        IssueSentenceVariety,
			Severity:    domain.IssueMinor,
			Description: "Sentences are all of similar length",
		})
	}

	if word, ok := repeatedOpening(sentences); ok {
		issues = append(issues, domain.ConsistencyIssue{
			Type:        IssueRepetitiveOpening,
			Severity:    domain.IssueMinor,
			Description: fmt.Sprintf("Several consecutive sentences start with %q", word),
		})
	}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	for _, pair := range spellingPairs {
		_, british := seen[pair[0]]
		_, american := seen[pair[1]]
		if british && american {
			issues = append(issues, domain.ConsistencyIssue{
				Type:        IssueSpellingVariant,
				Severity:    domain.IssueMajor,
				Description: fmt.Sprintf("Both %q and %q are used", pair[0], pair[1]),
			})
		}
	}

	score := 100.0
	for _, issue := range issues {
		score -= issue.Severity.Penalty()
	}
	return domain.ConsistencyReport{Score: math.Max(0, score), Issues: issues}
}

func sentenceLengthStdDev(sentences []string) float64 {
	lengths := make([]float64, len(sentences))
	var sum float64
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	return math.Sqrt(variance / float64(len(lengths)))
}

// repeatedOpening reports the first word that opens three sentences in a row.
func repeatedOpening(sentences []string) (string, bool) {
	run, prev := 0, ""
	for _, s := range sentences {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		first := normalizeWord(fields[0])
		if first != "" && first == prev {
			run++
		} else {
			run = 1
		}
		prev = first
		if run >= 3 {
			return first, true
		}
	}
	return "", false
}
