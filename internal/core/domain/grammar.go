package domain

// GrammarSuggestionType is one of the fixed rule categories reported by the grammar analyzer.
type GrammarSuggestionType string

// Grammar suggestion types.
const (
	GrammarSpelling             GrammarSuggestionType = "spelling"
	GrammarGrammar              GrammarSuggestionType = "grammar"
	GrammarPunctuation          GrammarSuggestionType = "punctuation"
	GrammarCapitalization       GrammarSuggestionType = "capitalization"
	GrammarSubjectVerbAgreement GrammarSuggestionType = "subject_verb_agreement"
	GrammarPronounReference     GrammarSuggestionType = "pronoun_reference"
	GrammarVerbTense            GrammarSuggestionType = "verb_tense"
	GrammarWordChoice           GrammarSuggestionType = "word_choice"
	GrammarClarity              GrammarSuggestionType = "clarity"
	GrammarConciseness          GrammarSuggestionType = "conciseness"
	GrammarRedundancy           GrammarSuggestionType = "redundancy"
	GrammarWordiness            GrammarSuggestionType = "wordiness"
	GrammarPassiveVoice         GrammarSuggestionType = "passive_voice"
	GrammarSentenceStructure    GrammarSuggestionType = "sentence_structure"
	GrammarRunOnSentence        GrammarSuggestionType = "run_on_sentence"
	GrammarSentenceFragment     GrammarSuggestionType = "sentence_fragment"
	GrammarVagueLanguage        GrammarSuggestionType = "vague_language"
	GrammarStyle                GrammarSuggestionType = "style"
)

// AllGrammarSuggestionTypes returns every grammar suggestion type.
func AllGrammarSuggestionTypes() []GrammarSuggestionType {
	return []GrammarSuggestionType{
		GrammarSpelling, GrammarGrammar, GrammarPunctuation, GrammarCapitalization,
		GrammarSubjectVerbAgreement, GrammarPronounReference, GrammarVerbTense,
		GrammarWordChoice, GrammarClarity, GrammarConciseness, GrammarRedundancy,
		GrammarWordiness, GrammarPassiveVoice, GrammarSentenceStructure,
		GrammarRunOnSentence, GrammarSentenceFragment, GrammarVagueLanguage, GrammarStyle,
	}
}

// IsValid returns true if the type is one of the fixed categories.
func (t GrammarSuggestionType) IsValid() bool {
	for _, known := range AllGrammarSuggestionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// GrammarCategory groups suggestion types for reporting.
type GrammarCategory string

// Grammar categories.
const (
	CategoryMechanical  GrammarCategory = "mechanical"
	CategoryClarity     GrammarCategory = "clarity"
	CategoryStyle       GrammarCategory = "style"
	CategoryConvention  GrammarCategory = "convention"
	CategoryUsage       GrammarCategory = "usage"
	CategoryConciseness GrammarCategory = "conciseness"
)

// GrammarSuggestion is a single positioned finding from the grammar analyzer.
type GrammarSuggestion struct {
	ID            string                `json:"id"`
	Type          GrammarSuggestionType `json:"type"`
	Severity      Severity              `json:"severity"`
	Category      GrammarCategory       `json:"category"`
	Position      Position              `json:"position"`
	OriginalText  string                `json:"original_text"`
	SuggestedText string                `json:"suggested_text,omitempty"`
	Message       string                `json:"message"`
	Explanation   string                `json:"explanation"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
}

// ClarityMetrics summarises how easy the text is to follow. All values are 0-100.
type ClarityMetrics struct {
	SentenceComplexity    float64 `json:"sentence_complexity"`
	Wordiness             float64 `json:"wordiness"`
	PassiveVoiceRatio     float64 `json:"passive_voice_ratio"`
	ComplexWordRatio      float64 `json:"complex_word_ratio"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	OverallScore          float64 `json:"overall_score"`
}

// GrammarResult is the grammar analyzer output for one text.
type GrammarResult struct {
	Suggestions []GrammarSuggestion `json:"suggestions"`
	Clarity     ClarityMetrics      `json:"clarity"`
}
