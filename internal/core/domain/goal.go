package domain

import "fmt"

// GoalAchievedThreshold is the progress percentage at which a goal counts as achieved.
const GoalAchievedThreshold = 80

// ToneTarget asks for a primary tone and, optionally, an intensity (0 = any).
type ToneTarget struct {
	Primary   string `json:"primary" toml:"primary"`
	Intensity int    `json:"intensity,omitempty" toml:"intensity"`
}

// ReadabilityTarget bounds the Flesch reading ease score. MaxScore 0 means 100.
type ReadabilityTarget struct {
	MinScore   float64 `json:"min_score" toml:"min_score"`
	MaxScore   float64 `json:"max_score,omitempty" toml:"max_score"`
	GradeLevel string  `json:"grade_level,omitempty" toml:"grade_level"`
}

// LengthTarget sets either a word target or a word range. MaxWords 0 means unbounded.
type LengthTarget struct {
	TargetWords int `json:"target_words,omitempty" toml:"target_words"`
	MinWords    int `json:"min_words,omitempty" toml:"min_words"`
	MaxWords    int `json:"max_words,omitempty" toml:"max_words"`
}

// StyleTarget asks for a voice and/or perspective. Empty fields are not evaluated.
type StyleTarget struct {
	Voice       Voice       `json:"voice,omitempty" toml:"voice"`
	Perspective Perspective `json:"perspective,omitempty" toml:"perspective"`
}

// VocabularyTarget sets the minimum unique-word ratio.
type VocabularyTarget struct {
	MinVocabularyDiversity float64 `json:"min_vocabulary_diversity" toml:"min_vocabulary_diversity"`
}

// PacingTarget bounds the average sentence length in words.
type PacingTarget struct {
	MinSentenceLength float64 `json:"min_sentence_length" toml:"min_sentence_length"`
	MaxSentenceLength float64 `json:"max_sentence_length" toml:"max_sentence_length"`
}

// WritingGoal is a user-defined target over writing metrics.
// Each non-nil target contributes one or more metrics to progress.
type WritingGoal struct {
	ID     string `json:"id" toml:"id"`
	Name   string `json:"name" toml:"name"`
	Active bool   `json:"active" toml:"active"`

	TargetTone        *ToneTarget        `json:"target_tone,omitempty" toml:"target_tone"`
	TargetReadability *ReadabilityTarget `json:"target_readability,omitempty" toml:"target_readability"`
	TargetLength      *LengthTarget      `json:"target_length,omitempty" toml:"target_length"`
	TargetStyle       *StyleTarget       `json:"target_style,omitempty" toml:"target_style"`
	TargetVocabulary  *VocabularyTarget  `json:"target_vocabulary,omitempty" toml:"target_vocabulary"`
	TargetPacing      *PacingTarget      `json:"target_pacing,omitempty" toml:"target_pacing"`
}

// HasTargets reports whether the goal sets at least one target.
func (g WritingGoal) HasTargets() bool {
	return g.TargetTone != nil || g.TargetReadability != nil || g.TargetLength != nil ||
		g.TargetStyle != nil || g.TargetVocabulary != nil || g.TargetPacing != nil
}

// Validate checks that the goal is named, has a target, and that each target is consistent.
func (g WritingGoal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: goal name is required", ErrInvalidInput)
	}
	if !g.HasTargets() {
		return fmt.Errorf("%w: goal %q has no targets", ErrInvalidInput, g.Name)
	}
	if t := g.TargetTone; t != nil && (t.Primary == "" || t.Intensity < 0 || t.Intensity > 100) {
		return fmt.Errorf("%w: tone target needs a primary tone and intensity 0-100", ErrInvalidInput)
	}
	if t := g.TargetReadability; t != nil {
		if t.MinScore < 0 || t.MaxScore < 0 || t.MaxScore > 100 || (t.MaxScore > 0 && t.MinScore > t.MaxScore) {
			return fmt.Errorf("%w: readability target must satisfy 0 <= min <= max <= 100", ErrInvalidInput)
		}
	}
	if t := g.TargetLength; t != nil {
		if t.TargetWords < 0 || t.MinWords < 0 || t.MaxWords < 0 || (t.MaxWords > 0 && t.MinWords > t.MaxWords) {
			return fmt.Errorf("%w: length target must satisfy 0 <= min <= max", ErrInvalidInput)
		}
		if t.TargetWords == 0 && t.MinWords == 0 && t.MaxWords == 0 {
			return fmt.Errorf("%w: length target needs target_words or a range", ErrInvalidInput)
		}
	}
	if t := g.TargetVocabulary; t != nil && (t.MinVocabularyDiversity <= 0 || t.MinVocabularyDiversity > 1) {
		return fmt.Errorf("%w: vocabulary diversity must be in (0, 1]", ErrInvalidInput)
	}
	if t := g.TargetPacing; t != nil && (t.MinSentenceLength < 0 || t.MinSentenceLength > t.MaxSentenceLength) {
		return fmt.Errorf("%w: pacing target must satisfy 0 <= min <= max", ErrInvalidInput)
	}
	return nil
}

// MetricStatus is how a single goal metric compares to its target.
type MetricStatus string

// Metric statuses.
const (
	MetricBelow     MetricStatus = "below"
	MetricAchieving MetricStatus = "achieving"
	MetricAchieved  MetricStatus = "achieved"
	MetricExceeded  MetricStatus = "exceeded"
)

// Counts reports whether the status counts towards goal progress.
func (s MetricStatus) Counts() bool {
	return s == MetricAchieved || s == MetricExceeded
}

// MetricProgress is the evaluation of one goal metric.
type MetricProgress struct {
	Metric string       `json:"metric"`
	Label  string       `json:"label"`
	Status MetricStatus `json:"status"`

	// Current and Target are numeric for scored metrics and zero otherwise.
	Current float64 `json:"current"`
	Target  float64 `json:"target"`

	// CurrentText and TargetText describe categorical metrics such as tone.
	CurrentText string `json:"current_text,omitempty"`
	TargetText  string `json:"target_text,omitempty"`
}

// GoalProgress is the evaluation of one goal against the current content.
type GoalProgress struct {
	GoalID     string           `json:"goal_id"`
	GoalName   string           `json:"goal_name"`
	IsAchieved bool             `json:"is_achieved"`
	Progress   int              `json:"progress"`
	Metrics    []MetricProgress `json:"metrics"`
	Feedback   string           `json:"feedback"`
}
