package domain

import "time"

// AnalysisRecord is the history entry saved after each completed analysis.
type AnalysisRecord struct {
	ID               string
	ProjectID        string
	ChapterID        string
	ReadabilityScore float64
	GradeLevel       float64
	ConsistencyScore float64
	ClarityScore     float64
	SuggestionCount  int
	Categories       map[string]int
	AcceptedCount    int
	DismissedCount   int
	WordCount        int
	Duration         time.Duration
	CreatedAt        time.Time
}

// SuggestionFeedback records what the author did with one suggestion.
type SuggestionFeedback struct {
	ID             string
	SuggestionID   string
	ProjectID      string
	ChapterID      string
	Action         FeedbackAction
	Kind           SuggestionKind
	SuggestionType string
	OriginalText   string
	AppliedText    string
	CreatedAt      time.Time
}

// Session identifies the document being analysed.
type Session struct {
	ProjectID string `json:"project_id" toml:"project_id"`
	ChapterID string `json:"chapter_id" toml:"chapter_id"`
}

// WriterPreferences is loaded from the preferences collaborator.
type WriterPreferences struct {
	Session Session       `json:"session"`
	Goals   []WritingGoal `json:"goals"`
}

// ActiveGoals returns the goals marked active, in stored order.
func (p *WriterPreferences) ActiveGoals() []WritingGoal {
	if p == nil {
		return nil
	}
	var out []WritingGoal
	for _, g := range p.Goals {
		if g.Active {
			out = append(out, g)
		}
	}
	return out
}
