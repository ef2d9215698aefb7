package domain

// ReadabilityScores holds the standard readability formulas for a text.
// All scores are zero for empty text.
type ReadabilityScores struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	GunningFog                float64 `json:"gunning_fog"`
	SMOG                      float64 `json:"smog"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`

	// GradeLevel is a label derived from the Flesch-Kincaid grade.
	GradeLevel string `json:"grade_level"`

	Sentences    int `json:"sentences"`
	Words        int `json:"words"`
	Syllables    int `json:"syllables"`
	ComplexWords int `json:"complex_words"`
	Letters      int `json:"letters"`
}
