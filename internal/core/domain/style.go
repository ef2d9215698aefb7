package domain

// ComplexityLevel classifies vocabulary by average word length.
type ComplexityLevel string

// Complexity levels.
const (
	ComplexitySimple      ComplexityLevel = "simple"
	ComplexityModerate    ComplexityLevel = "moderate"
	ComplexityComplex     ComplexityLevel = "complex"
	ComplexityVeryComplex ComplexityLevel = "very_complex"
)

// Voice is the dominant grammatical voice of a text.
type Voice string

// Voices.
const (
	VoiceActive  Voice = "active"
	VoicePassive Voice = "passive"
	VoiceMixed   Voice = "mixed"
)

// Perspective is the dominant narrative person.
type Perspective string

// Perspectives.
const (
	PerspectiveFirst  Perspective = "first_person"
	PerspectiveSecond Perspective = "second_person"
	PerspectiveThird  Perspective = "third_person"
)

// Tense is the dominant verb tense.
type Tense string

// Tenses.
const (
	TensePast    Tense = "past"
	TensePresent Tense = "present"
	TenseFuture  Tense = "future"
	TenseMixed   Tense = "mixed"
)

// ToneNeutral is reported when no mood keywords are found.
const ToneNeutral = "neutral"

// ToneAnalysis is the keyword-bucket mood estimate.
type ToneAnalysis struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`

	// Intensity is 0-100.
	Intensity int            `json:"intensity"`
	Counts    map[string]int `json:"counts,omitempty"`
}

// VoiceAnalysis covers voice, perspective and tense.
type VoiceAnalysis struct {
	Voice        Voice       `json:"voice"`
	Perspective  Perspective `json:"perspective"`
	Tense        Tense       `json:"tense"`
	PassiveRatio float64     `json:"passive_ratio"`
}

// IssueSeverity weights a consistency issue.
type IssueSeverity string

// Issue severities with their score penalties.
const (
	IssueMajor    IssueSeverity = "major"
	IssueModerate IssueSeverity = "moderate"
	IssueMinor    IssueSeverity = "minor"
)

// Penalty returns the consistency score deduction for the severity.
func (s IssueSeverity) Penalty() float64 {
	switch s {
	case IssueMajor:
		return 15
	case IssueModerate:
		return 8
	case IssueMinor:
		return 3
	default:
		return 0
	}
}

// ConsistencyIssue is a detected inconsistency in the text.
type ConsistencyIssue struct {
	Type        string        `json:"type"`
	Severity    IssueSeverity `json:"severity"`
	Description string        `json:"description"`
}

// ConsistencyReport scores the text's internal consistency (0-100).
type ConsistencyReport struct {
	Score  float64            `json:"score"`
	Issues []ConsistencyIssue `json:"issues,omitempty"`
}

// Priority orders style recommendations.
type Priority string

// Priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns 0 for high through 2 for low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// StyleRecommendation is an actionable piece of style advice.
type StyleRecommendation struct {
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
}

// StyleAnalysisResult is the structured style report for one text.
type StyleAnalysisResult struct {
	Readability         ReadabilityScores     `json:"readability"`
	Complexity          ComplexityLevel       `json:"complexity"`
	SyntacticComplexity float64               `json:"syntactic_complexity"`
	Tone                ToneAnalysis          `json:"tone"`
	Voice               VoiceAnalysis         `json:"voice"`
	Consistency         ConsistencyReport     `json:"consistency"`
	Recommendations     []StyleRecommendation `json:"recommendations,omitempty"`

	WordCount             int     `json:"word_count"`
	SentenceCount         int     `json:"sentence_count"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	AverageWordLength     float64 `json:"average_word_length"`
}

// DefaultStyleResult is the safe result returned when style analysis cannot complete.
func DefaultStyleResult() *StyleAnalysisResult {
	return &StyleAnalysisResult{
		Complexity: ComplexitySimple,
		Tone: ToneAnalysis{
			Primary:   ToneNeutral,
			Intensity: 50,
		},
		Voice: VoiceAnalysis{
			Voice:       VoiceActive,
			Perspective: PerspectiveThird,
			Tense:       TensePast,
		},
		Consistency: ConsistencyReport{Score: 100},
	}
}
