package domain

import "time"

// SuggestionKind is the display family of an inline suggestion.
type SuggestionKind string

// Inline suggestion kinds.
const (
	KindGrammar SuggestionKind = "grammar"
	KindStyle   SuggestionKind = "style"
	KindClarity SuggestionKind = "clarity"
	KindGoal    SuggestionKind = "goal"
)

// SuggestionSource tags which analyzer produced an inline suggestion.
// It is the discriminator for InlineSuggestion.Payload.
type SuggestionSource string

// Suggestion sources.
const (
	SourceGrammar SuggestionSource = "grammar"
	SourceStyle   SuggestionSource = "style"
	SourceGoals   SuggestionSource = "goals"
	SourceRemote  SuggestionSource = "remote"
)

// SuggestionPayload is the analyzer-specific part of an inline suggestion.
// The concrete type is determined by Source() and is one of GrammarPayload,
// StylePayload, GoalPayload or RemotePayload.
type SuggestionPayload interface {
	Source() SuggestionSource
	isSuggestionPayload()
}

// GrammarPayload carries the underlying grammar suggestion.
type GrammarPayload struct {
	Suggestion GrammarSuggestion `json:"suggestion"`
}

// Source implements SuggestionPayload.
func (GrammarPayload) Source() SuggestionSource { return SourceGrammar }
func (GrammarPayload) isSuggestionPayload()     {}

// StylePayload carries the underlying style recommendation.
type StylePayload struct {
	Recommendation StyleRecommendation `json:"recommendation"`
}

// Source implements SuggestionPayload.
func (StylePayload) Source() SuggestionSource { return SourceStyle }
func (StylePayload) isSuggestionPayload()     {}

// GoalPayload carries the progress of the goal the suggestion refers to.
type GoalPayload struct {
	Progress GoalProgress `json:"progress"`
}

// Source implements SuggestionPayload.
func (GoalPayload) Source() SuggestionSource { return SourceGoals }
func (GoalPayload) isSuggestionPayload()     {}

// RemotePayload carries a suggestion from the remote suggestion source.
type RemotePayload struct {
	Suggestion WritingSuggestion `json:"suggestion"`
}

// Source implements SuggestionPayload.
func (RemotePayload) Source() SuggestionSource { return SourceRemote }
func (RemotePayload) isSuggestionPayload()     {}

// InlineSuggestion is a positioned, severity-tagged recommendation surfaced to the author.
// Positions are only valid for the content they were computed against.
type InlineSuggestion struct {
	ID         string            `json:"id"`
	Kind       SuggestionKind    `json:"kind"`
	Severity   Severity          `json:"severity"`
	Text       string            `json:"text"`
	Position   Position          `json:"position"`
	Preview    string            `json:"preview,omitempty"`
	Confidence float64           `json:"confidence"`
	Source     SuggestionSource  `json:"source"`
	Payload    SuggestionPayload `json:"payload"`
	CreatedAt  time.Time         `json:"created_at"`

	// Expanded and Applying are owned by the UI.
	Expanded bool `json:"expanded"`
	Applying bool `json:"applying"`
}

// WritingSuggestion is the shape returned by the remote suggestion source.
type WritingSuggestion struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	OriginalText  string   `json:"originalText"`
	SuggestedText string   `json:"suggestedText"`
	Position      Position `json:"position"`
	Confidence    float64  `json:"confidence"`
	Reasoning     string   `json:"reasoning"`
	Category      string   `json:"category"`
}

// FeedbackAction is what the author did with a suggestion.
type FeedbackAction string

// Feedback actions.
const (
	FeedbackAccepted  FeedbackAction = "accepted"
	FeedbackDismissed FeedbackAction = "dismissed"
	FeedbackIgnored   FeedbackAction = "ignored"
)

// IsValid returns true if the action is recognised.
func (a FeedbackAction) IsValid() bool {
	switch a {
	case FeedbackAccepted, FeedbackDismissed, FeedbackIgnored:
		return true
	default:
		return false
	}
}
