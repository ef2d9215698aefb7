package grammar

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// finding is a raw rule match before it becomes a GrammarSuggestion.
type finding struct {
	start, end int
	suggested  string
	message    string
}

// rule is one family of checks. Rules run in the order of the rules slice.
type rule struct {
	typ         domain.GrammarSuggestionType
	category    domain.GrammarCategory
	severity    domain.Severity
	confidence  float64
	explanation string
	find        func(text string) []finding
}

var wordPattern = regexp.MustCompile(`[A-Za-z']+`)

// misspellings maps common misspellings to their corrections.
var misspellings = map[string]string{
	"teh":        "the",
	"recieve":    "receive",
	"seperate":   "separate",
	"definately": "definitely",
	"occured":    "occurred",
	"untill":     "until",
	"wich":       "which",
	"accross":    "across",
	"beleive":    "believe",
	"goverment":  "government",
	"alot":       "a lot",
	"wierd":      "weird",
	"thier":      "their",
	"tommorow":   "tomorrow",
	"neccessary": "necessary",
	"begining":   "beginning",
	"noticable":  "noticeable",
	"occassion":  "occasion",
}

// agreement pairs a subject pattern with the verb corrections it needs.
type agreement struct {
	pattern *regexp.Regexp
	fix     map[string]string
}

var agreements = []agreement{
	{
		pattern: regexp.MustCompile(`(?i)\b(he|she|it)\s+(are|were|have|do|don't)\b`),
		fix:     map[string]string{"are": "is", "were": "was", "have": "has", "do": "does", "don't": "doesn't"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(they|we|you)\s+(is|was|has|does|doesn't)\b`),
		fix:     map[string]string{"is": "are", "was": "were", "has": "have", "does": "do", "doesn't": "don't"},
	},
}

var (
	ambiguousPronoun = regexp.MustCompile(`(?:^|[.!?]\s+)(This|That|It)\s+(?:is|was|means|shows|makes|suggests)\b`)
	doubleSpace      = regexp.MustCompile(`[^\S\n]{2,}`)
	missingSpace     = regexp.MustCompile(`[a-z][.!?][A-Z]`)
	sentencePattern  = regexp.MustCompile(`[^.!?]+[.!?]*`)
	vagueMarker      = regexp.MustCompile(`(?i)\b(?:stuff|things|something|somewhat|kind of|sort of)\b`)
	aLot             = regexp.MustCompile(`(?i)\ba lot\b`)
	weakIntensifier  = regexp.MustCompile(`(?i)\b(?:very|really|quite)\b`)
	passiveVoice     = regexp.MustCompile(`(?i)\b(?:am|is|are|was|were|be|been|being)\s+\w+(?:ed|en)\b`)
)

// replacement is a phrase with a shorter alternative.
type replacement struct {
	phrase, with string
}

// phraseRule matches one replacement case-insensitively on word boundaries.
type phraseRule struct {
	pattern *regexp.Regexp
	with    string
}

// compilePhrases matches on the original text so offsets stay valid for
// letters whose lowercase form has a different byte length.
func compilePhrases(list []replacement) []phraseRule {
	out := make([]phraseRule, len(list))
	for i, r := range list {
		out[i] = phraseRule{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.phrase) + `\b`),
			with:    r.with,
		}
	}
	return out
}

var redundantPhrases = compilePhrases([]replacement{
	{"absolutely essential", "essential"},
	{"basic fundamentals", "fundamentals"},
	{"completely finished", "finished"},
	{"end result", "result"},
	{"final outcome", "outcome"},
	{"free gift", "gift"},
	{"past history", "history"},
	{"each and every", "each"},
	{"close proximity", "proximity"},
	{"unexpected surprise", "surprise"},
	{"added bonus", "bonus"},
	{"future plans", "plans"},
})

var wordyPhrases = compilePhrases([]replacement{
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"at this point in time", "now"},
	{"in the event that", "if"},
	{"for the purpose of", "for"},
	{"in spite of the fact that", "although"},
	{"has the ability to", "can"},
	{"it is important to note that", "note that"},
	{"a large number of", "many"},
	{"in the near future", "soon"},
})

// LongSentenceWords is the word count above which a sentence is flagged.
const LongSentenceWords = 40

// rules lists every rule family in discovery order.
var rules = []rule{
	{
		typ:         domain.GrammarSpelling,
		category:    domain.CategoryMechanical,
		severity:    domain.SeverityError,
		confidence:  0.95,
		explanation: "This word is commonly misspelled.",
		find:        findMisspellings,
	},
	{
		typ:         domain.GrammarSubjectVerbAgreement,
		category:    domain.CategoryUsage,
		severity:    domain.SeverityError,
		confidence:  0.85,
		explanation: "The verb must agree with its subject in number.",
		find:        findAgreement,
	},
	{
		typ:         domain.GrammarPronounReference,
		category:    domain.CategoryClarity,
		severity:    domain.SeveritySuggestion,
		confidence:  0.55,
		explanation: "A pronoun opening a sentence may not make clear what it refers to.",
		find:        findAmbiguousPronouns,
	},
	{
		typ:         domain.GrammarPunctuation,
		category:    domain.CategoryConvention,
		severity:    domain.SeverityWarning,
		confidence:  0.9,
		explanation: "Use a single space between words and after sentence punctuation.",
		find:        findSpacing,
	},
	{
		typ:         domain.GrammarClarity,
		category:    domain.CategoryClarity,
		severity:    domain.SeverityWarning,
		confidence:  0.7,
		explanation: "Long sentences are harder to follow. Consider splitting this one.",
		find:        findLongSentences,
	},
	{
		typ:         domain.GrammarVagueLanguage,
		category:    domain.CategoryClarity,
		severity:    domain.SeveritySuggestion,
		confidence:  0.6,
		explanation: "Vague words weaken prose. Name the specific thing or amount.",
		find:        findVagueLanguage,
	},
	{
		typ:         domain.GrammarWordChoice,
		category:    domain.CategoryStyle,
		severity:    domain.SeveritySuggestion,
		confidence:  0.6,
		explanation: "Weak intensifiers add little. Choose a stronger word instead.",
		find: func(text string) []finding {
			return findPattern(text, weakIntensifier, "", "Consider removing the intensifier %q")
		},
	},
	{
		typ:         domain.GrammarRedundancy,
		category:    domain.CategoryConciseness,
		severity:    domain.SeveritySuggestion,
		confidence:  0.8,
		explanation: "This phrase repeats its own meaning.",
		find: func(text string) []finding {
			return findPhrases(text, redundantPhrases, "Redundant phrase %q")
		},
	},
	{
		typ:         domain.GrammarWordiness,
		category:    domain.CategoryConciseness,
		severity:    domain.SeveritySuggestion,
		confidence:  0.75,
		explanation: "A shorter phrase says the same thing.",
		find: func(text string) []finding {
			return findPhrases(text, wordyPhrases, "Wordy phrase %q")
		},
	},
	{
		typ:         domain.GrammarPassiveVoice,
		category:    domain.CategoryStyle,
		severity:    domain.SeverityInfo,
		confidence:  0.6,
		explanation: "Passive constructions hide the actor. Active voice is usually clearer and more direct.",
		find: func(text string) []finding {
			return findPattern(text, passiveVoice, "", "Possible passive voice: %q")
		},
	},
}

func findMisspellings(text string) []finding {
	var out []finding
	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		if fix, ok := misspellings[strings.ToLower(word)]; ok {
			out = append(out, finding{
				start:     loc[0],
				end:       loc[1],
				suggested: fix,
				message:   "Possible spelling mistake: \"" + word + "\"",
			})
		}
	}
	return out
}

func findAgreement(text string) []finding {
	var out []finding
	for _, a := range agreements {
		for _, m := range a.pattern.FindAllStringSubmatchIndex(text, -1) {
			subject := text[m[2]:m[3]]
			verb := text[m[4]:m[5]]
			fix, ok := a.fix[strings.ToLower(verb)]
			if !ok {
				continue
			}
			out = append(out, finding{
				start:     m[0],
				end:       m[1],
				suggested: subject + " " + fix,
				message:   "\"" + subject + "\" does not agree with \"" + verb + "\"",
			})
		}
	}
	sortFindings(out)
	return out
}

func findAmbiguousPronouns(text string) []finding {
	var out []finding
	for _, m := range ambiguousPronoun.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, finding{
			start:   m[2],
			end:     m[3],
			message: "Unclear what \"" + text[m[2]:m[3]] + "\" refers to",
		})
	}
	return out
}

func findSpacing(text string) []finding {
	var out []finding
	for _, loc := range doubleSpace.FindAllStringIndex(text, -1) {
		out = append(out, finding{start: loc[0], end: loc[1], suggested: " ", message: "Multiple spaces"})
	}
	for _, loc := range missingSpace.FindAllStringIndex(text, -1) {
		span := text[loc[0]:loc[1]]
		out = append(out, finding{
			start:     loc[0],
			end:       loc[1],
			suggested: span[:2] + " " + span[2:],
			message:   "Missing space after sentence punctuation",
		})
	}
	sortFindings(out)
	return out
}

func findLongSentences(text string) []finding {
	var out []finding
	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		start, end := trimSpan(text, loc[0], loc[1])
		if start >= end {
			continue
		}
		if n := len(strings.Fields(text[start:end])); n > LongSentenceWords {
			out = append(out, finding{start: start, end: end, message: "Sentence is very long"})
		}
	}
	return out
}

func findVagueLanguage(text string) []finding {
	out := findPattern(text, vagueMarker, "", "Vague wording: %q")
	for _, loc := range aLot.FindAllStringIndex(text, -1) {
		out = append(out, finding{
			start:     loc[0],
			end:       loc[1],
			suggested: "many",
			message:   "\"a lot\" is imprecise",
		})
	}
	sortFindings(out)
	return out
}

func findPattern(text string, re *regexp.Regexp, suggested, format string) []finding {
	var out []finding
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, finding{
			start:     loc[0],
			end:       loc[1],
			suggested: suggested,
			message:   fmt.Sprintf(format, text[loc[0]:loc[1]]),
		})
	}
	return out
}

// findPhrases locates each phrase case-insensitively on word boundaries.
func findPhrases(text string, phrases []phraseRule, format string) []finding {
	var out []finding
	for _, p := range phrases {
		for _, loc := range p.pattern.FindAllStringIndex(text, -1) {
			out = append(out, finding{
				start:     loc[0],
				end:       loc[1],
				suggested: p.with,
				message:   fmt.Sprintf(format, text[loc[0]:loc[1]]),
			})
		}
	}
	sortFindings(out)
	return out
}

func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func sortFindings(f []finding) {
	sort.SliceStable(f, func(i, j int) bool { return f[i].start < f[j].start })
}
