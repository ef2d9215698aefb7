package domain

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// AnalysisKind selects which analyzers a batch runs.
type AnalysisKind string

// Analysis kinds. KindAll expands to every other kind.
const (
	AnalysisStyle       AnalysisKind = "style"
	AnalysisGrammar     AnalysisKind = "grammar"
	AnalysisGoals       AnalysisKind = "goals"
	AnalysisReadability AnalysisKind = "readability"
	AnalysisAll         AnalysisKind = "all"
)

// AllAnalysisKinds returns the concrete kinds (excluding AnalysisAll).
func AllAnalysisKinds() []AnalysisKind {
	return []AnalysisKind{AnalysisStyle, AnalysisGrammar, AnalysisGoals, AnalysisReadability}
}

// IsValid returns true if the kind is recognised.
func (k AnalysisKind) IsValid() bool {
	switch k {
	case AnalysisStyle, AnalysisGrammar, AnalysisGoals, AnalysisReadability, AnalysisAll:
		return true
	default:
		return false
	}
}

// ExpandKinds resolves AnalysisAll and removes duplicates and unknown kinds.
// An empty input means all kinds.
func ExpandKinds(kinds []AnalysisKind) []AnalysisKind {
	if len(kinds) == 0 || slices.Contains(kinds, AnalysisAll) {
		return AllAnalysisKinds()
	}
	out := make([]AnalysisKind, 0, len(kinds))
	for _, k := range AllAnalysisKinds() {
		if slices.Contains(kinds, k) {
			out = append(out, k)
		}
	}
	return out
}

// BatchOrigin records what triggered a batch.
type BatchOrigin string

// Batch origins.
const (
	OriginUser   BatchOrigin = "user"
	OriginAuto   BatchOrigin = "auto"
	OriginSystem BatchOrigin = "system"
)

// BatchPriority is informational; batches are always processed in submission order.
type BatchPriority string

// Batch priorities.
const (
	BatchPriorityLow    BatchPriority = "low"
	BatchPriorityNormal BatchPriority = "normal"
	BatchPriorityHigh   BatchPriority = "high"
)

// BatchStatus is the lifecycle state of a batch.
type BatchStatus string

// Batch statuses: pending -> processing -> completed | failed.
const (
	BatchPending    BatchStatus = "pending"
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// AnalysisBatch is one scheduled unit of analysis work over a content snapshot.
type AnalysisBatch struct {
	ID        string
	Seq       uint64
	Content   string
	CreatedAt time.Time
	Origin    BatchOrigin
	Priority  BatchPriority
	Kinds     []AnalysisKind
	Status    BatchStatus
	Results   *AnalysisResults
	Error     string
}

// AnalysisResults is the composed output of the analyzers for one content snapshot.
// Nil fields were not requested or failed.
type AnalysisResults struct {
	Style       *StyleAnalysisResult    `json:"style,omitempty"`
	Readability *ReadabilityScores      `json:"readability,omitempty"`
	Grammar     []GrammarSuggestion     `json:"grammar,omitempty"`
	Clarity     *ClarityMetrics         `json:"clarity,omitempty"`
	Goals       map[string]GoalProgress `json:"goals,omitempty"`
	Remote      []WritingSuggestion     `json:"remote,omitempty"`
	Inline      []InlineSuggestion      `json:"inline"`

	// Completed lists the kinds that produced results.
	Completed []AnalysisKind `json:"completed"`

	// Failures holds the error message of each requested kind that failed.
	Failures map[AnalysisKind]string `json:"failures,omitempty"`

	WordCount int           `json:"word_count"`
	Duration  time.Duration `json:"duration"`
}

// Failed reports whether any requested kind failed.
func (r *AnalysisResults) Failed() bool {
	return r != nil && len(r.Failures) > 0
}

// FailureSummary joins the failure messages in kind order.
func (r *AnalysisResults) FailureSummary() string {
	if !r.Failed() {
		return ""
	}
	var parts []string
	for _, k := range AllAnalysisKinds() {
		if msg, ok := r.Failures[k]; ok {
			parts = append(parts, string(k)+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// AnalysisState is the authoritative, coordinator-owned view of the latest analysis.
type AnalysisState struct {
	Active         bool   `json:"active"`
	Analyzing      bool   `json:"analyzing"`
	ActiveAnalyses int    `json:"active_analyses"`
	PendingChanges int    `json:"pending_changes"`
	LastContent    string `json:"last_content"`

	LastAnalysis time.Time     `json:"last_analysis"`
	Duration     time.Duration `json:"duration"`
	LastError    string        `json:"last_error,omitempty"`

	Style       *StyleAnalysisResult    `json:"style,omitempty"`
	Readability *ReadabilityScores      `json:"readability,omitempty"`
	Grammar     []GrammarSuggestion     `json:"grammar"`
	Clarity     *ClarityMetrics         `json:"clarity,omitempty"`
	Suggestions []InlineSuggestion      `json:"suggestions"`
	Goals       map[string]GoalProgress `json:"goals"`

	Accepted  int `json:"accepted"`
	Dismissed int `json:"dismissed"`
}

// Clone returns a copy that shares no mutable slices or maps with s.
func (s AnalysisState) Clone() AnalysisState {
	out := s
	out.Grammar = slices.Clone(s.Grammar)
	out.Suggestions = slices.Clone(s.Suggestions)
	out.Goals = maps.Clone(s.Goals)
	if s.Style != nil {
		style := *s.Style
		style.Recommendations = slices.Clone(s.Style.Recommendations)
		style.Consistency.Issues = slices.Clone(s.Style.Consistency.Issues)
		style.Tone.Counts = maps.Clone(s.Style.Tone.Counts)
		out.Style = &style
	}
	if s.Readability != nil {
		r := *s.Readability
		out.Readability = &r
	}
	if s.Clarity != nil {
		c := *s.Clarity
		out.Clarity = &c
	}
	return out
}
