package goals

import (
	"strings"

	"github.com/custodia-labs/inkwell/internal/analyzers/style"
	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Metric identifiers.
const (
	MetricReadability = "readability"
	MetricGradeLevel  = "grade_level"
	MetricLength      = "length"
	MetricTone        = "tone"
	MetricVocabulary  = "vocabulary"
	MetricVoice       = "voice"
	MetricPerspective = "perspective"
	MetricPacing      = "pacing"
)

// Thresholds for partially met targets.
const (
	lengthAchievingPercent = 80
	toneIntensityTolerance = 20
	vocabularyAchieving    = 0.8
	pacingTolerance        = 0.2
)

func readabilityMetrics(goal domain.WritingGoal, s *subject) []domain.MetricProgress {
	t := goal.TargetReadability
	if t == nil {
		return nil
	}

	maxScore := t.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}
	scores := s.style().Readability
	ease := scores.FleschReadingEase

	m := domain.MetricProgress{
		Metric:  MetricReadability,
		Label:   "Readability",
		Current: ease,
		Target:  t.MinScore,
	}
	switch {
	case ease > maxScore:
		m.Status = domain.MetricExceeded
	case ease >= t.MinScore:
		m.Status = domain.MetricAchieved
	default:
		m.Status = domain.MetricBelow
	}
	out := []domain.MetricProgress{m}

	if t.GradeLevel != "" {
		grade := domain.MetricProgress{
			Metric:      MetricGradeLevel,
			Label:       "Grade level",
			Status:      domain.MetricBelow,
			Current:     scores.FleschKincaidGrade,
			CurrentText: scores.GradeLevel,
			TargetText:  t.GradeLevel,
		}
		if strings.EqualFold(scores.GradeLevel, t.GradeLevel) {
			grade.Status = domain.MetricAchieved
		}
		out = append(out, grade)
	}
	return out
}

func lengthMetrics(goal domain.WritingGoal, s *subject) []domain.MetricProgress {
	t := goal.TargetLength
	if t == nil {
		return nil
	}

	m := domain.MetricProgress{
		Metric:  MetricLength,
		Label:   "Word count",
		Current: float64(s.wordCount),
	}

	if t.TargetWords > 0 {
		m.Target = float64(t.TargetWords)
		percent := min(100, float64(s.wordCount)/float64(t.TargetWords)*100)
		switch {
		case percent >= 100:
			m.Status = domain.MetricAchieved
		case percent >= lengthAchievingPercent:
			m.Status = domain.MetricAchieving
		default:
			m.Status = domain.MetricBelow
		}
		return []domain.MetricProgress{m}
	}

	m.Target = float64(t.MinWords)
	switch {
	case s.wordCount < t.MinWords:
		m.Status = domain.MetricBelow
	case t.MaxWords > 0 && s.wordCount > t.MaxWords:
		m.Status = domain.MetricExceeded
	default:
		m.Status = domain.MetricAchieved
	}
	return []domain.MetricProgress{m}
}

func toneMetrics(goal domain.WritingGoal, s *subject) []domain.MetricProgress {
	t := goal.TargetTone
	if t == nil {
		return nil
	}

	tone := s.style().Tone
	m := domain.MetricProgress{
		Metric:      MetricTone,
		Label:       "Tone",
		Status:      domain.MetricBelow,
		Current:     float64(tone.Intensity),
		Target:      float64(t.Intensity),
		CurrentText: tone.Primary,
		TargetText:  t.Primary,
	}

	if strings.EqualFold(tone.Primary, t.Primary) {
		delta := tone.Intensity - t.Intensity
		if delta < 0 {
			delta = -delta
		}
		if t.Intensity == 0 || delta < toneIntensityTolerance {
			m.Status = domain.MetricAchieved
		} else {
			m.Status = domain.MetricAchieving
		}
	}
	return []domain.MetricProgress{m}
}

func vocabularyMetrics(goal domain.WritingGoal, s *subject) []domain.MetricProgress {
	t := goal.TargetVocabulary
	if t == nil {
		return nil
	}

	diversity := VocabularyDiversity(s.text)
	m := domain.MetricProgress{
		Metric:  MetricVocabulary,
		Label:   "Vocabulary diversity",
		Current: diversity,
		Target:  t.MinVocabularyDiversity,
	}
	switch {
	case diversity >= t.MinVocabularyDiversity:
		m.Status = domain.MetricAchieved
	case diversity >= vocabularyAchieving*t.MinVocabularyDiversity:
		m.Status = domain.MetricAchieving
	default:
		m.Status = domain.MetricBelow
	}
	return []domain.MetricProgress{m}
}

func styleMetrics(goal domain.WritingGoal, s *subject) []domain.MetricProgress {
	t := goal.TargetStyle
	if t == nil {
		return nil
	}

	var out []domain.MetricProgress
	voice := s.style().Voice
	if t.Voice != "" {
		out = append(out, categorical(MetricVoice, "Voice", string(voice.Voice), string(t.Voice)))
	}
	if t.Perspective != "" {
		out = append(out, categorical(MetricPerspective, "Perspective", string(voice.Perspective), string(t.Perspective)))
	}
	return out
}

func pacingMetrics(goal domain.WritingGoal, s *subject) []domain.MetricProgress {
	t := goal.TargetPacing
	if t == nil {
		return nil
	}

	avg := s.style().AverageSentenceLength
	m := domain.MetricProgress{
		Metric:  MetricPacing,
		Label:   "Sentence length",
		Current: avg,
		Target:  t.MinSentenceLength,
	}

	tooShort := avg < t.MinSentenceLength
	tooLong := t.MaxSentenceLength > 0 && avg > t.MaxSentenceLength
	switch {
	case !tooShort && !tooLong:
		m.Status = domain.MetricAchieved
	case tooShort && avg >= t.MinSentenceLength*(1-pacingTolerance):
		m.Status = domain.MetricAchieving
	case tooLong && avg <= t.MaxSentenceLength*(1+pacingTolerance):
		m.Status = domain.MetricAchieving
	default:
		m.Status = domain.MetricBelow
	}
	return []domain.MetricProgress{m}
}

func categorical(metric, label, current, target string) domain.MetricProgress {
	m := domain.MetricProgress{
		Metric:      metric,
		Label:       label,
		Status:      domain.MetricBelow,
		CurrentText: current,
		TargetText:  target,
	}
	if normalizeLabel(current) == normalizeLabel(target) {
		m.Status = domain.MetricAchieved
	}
	return m
}

func normalizeLabel(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// VocabularyDiversity is the ratio of unique to total normalized words.
// Text without words has diversity 0.
func VocabularyDiversity(text string) float64 {
	words := style.NormalizeWords(text)
	if len(words) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(len(words))
}
