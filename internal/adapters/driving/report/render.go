package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/inkwell/internal/analyzers/readability"
	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Renderer formats analysis output as terminal text.
type Renderer struct {
	styles *Styles
	color  bool
}

// NewRenderer creates a renderer. color enables ANSI styling.
func NewRenderer(color bool) *Renderer {
	return &Renderer{
		styles: NewStyles(DefaultTheme(), color),
		color:  color,
	}
}

// Results renders a full report for one analysis.
func (r *Renderer) Results(title string, res *domain.AnalysisResults) string {
	var b strings.Builder
	if res == nil {
		res = &domain.AnalysisResults{}
	}

	header := r.styles.Title.Render(title) + "\n" +
		fmt.Sprintf("%d words, %s read, analyzed in %s",
			res.WordCount, readingTime(res.WordCount), res.Duration.Round(time.Millisecond))
	if r.color {
		header = r.styles.Box.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	if res.Readability != nil {
		r.readability(&b, res.Readability)
	}
	if res.Style != nil {
		r.style(&b, res.Style)
	}
	if res.Clarity != nil {
		r.clarity(&b, res.Clarity, len(res.Grammar))
	}
	if len(res.Inline) > 0 {
		b.WriteString(r.Suggestions(res.Inline))
	}
	if len(res.Goals) > 0 {
		b.WriteString(r.Goals(res.Goals))
	}
	if res.Failed() {
		b.WriteString("\n")
		b.WriteString(r.styles.Severity(domain.SeverityError).Render("Failed: " + res.FailureSummary()))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) section(b *strings.Builder, name string) {
	b.WriteString("\n")
	b.WriteString(r.styles.Section.Render(name))
	b.WriteString("\n")
}

func (r *Renderer) field(b *strings.Builder, label, format string, args ...any) {
	fmt.Fprintf(b, "  %s %s\n", r.styles.Label.Render(fmt.Sprintf("%-22s", label)), fmt.Sprintf(format, args...))
}

func (r *Renderer) readability(b *strings.Builder, s *domain.ReadabilityScores) {
	r.section(b, "Readability")
	r.field(b, "Flesch reading ease", "%.1f", s.FleschReadingEase)
	r.field(b, "Flesch-Kincaid grade", "%.1f", s.FleschKincaidGrade)
	r.field(b, "Gunning fog", "%.1f", s.GunningFog)
	r.field(b, "SMOG", "%.1f", s.SMOG)
	r.field(b, "ARI", "%.1f", s.AutomatedReadabilityIndex)
	if s.GradeLevel != "" {
		r.field(b, "Grade level", "%s", strings.ReplaceAll(s.GradeLevel, "_", " "))
	}
}

func (r *Renderer) style(b *strings.Builder, s *domain.StyleAnalysisResult) {
	r.section(b, "Style")
	r.field(b, "Complexity", "%s", strings.ReplaceAll(string(s.Complexity), "_", " "))
	r.field(b, "Tone", "%s (intensity %d)", s.Tone.Primary, s.Tone.Intensity)
	r.field(b, "Voice", "%s, %s, %s tense",
		s.Voice.Voice, strings.ReplaceAll(string(s.Voice.Perspective), "_", " "), s.Voice.Tense)
	r.field(b, "Consistency", "%.0f/100", s.Consistency.Score)
	for _, issue := range s.Consistency.Issues {
		fmt.Fprintf(b, "    %s %s\n", r.styles.Muted.Render("!"), issue.Description)
	}
	for _, rec := range s.Recommendations {
		fmt.Fprintf(b, "  - %s %s\n", rec.Description, r.styles.Muted.Render("("+string(rec.Priority)+")"))
	}
}

func (r *Renderer) clarity(b *strings.Builder, c *domain.ClarityMetrics, issues int) {
	r.section(b, "Clarity")
	r.field(b, "Overall", "%.0f/100", c.OverallScore)
	r.field(b, "Passive voice", "%.0f%%", c.PassiveVoiceRatio*100)
	r.field(b, "Average sentence", "%.1f words", c.AverageSentenceLength)
	r.field(b, "Grammar issues", "%d", issues)
}

// Suggestions renders merged suggestions, most severe first as given.
func (r *Renderer) Suggestions(list []domain.InlineSuggestion) string {
	var b strings.Builder
	r.section(&b, fmt.Sprintf("Suggestions (%d)", len(list)))
	for _, s := range list {
		sev := r.styles.Severity(s.Severity).Render(fmt.Sprintf("%-10s", s.Severity))
		loc := ""
		if s.Position.Line > 0 {
			loc = fmt.Sprintf("%d:%d", s.Position.Line, s.Position.Column)
		}
		fmt.Fprintf(&b, "  %s %s %s", sev, r.styles.Muted.Render(fmt.Sprintf("%-7s", loc)), s.Text)
		if s.Preview != "" {
			fmt.Fprintf(&b, " %s", r.styles.Muted.Render("-> "+s.Preview))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Goals renders goal progress ordered by goal name.
func (r *Renderer) Goals(progress map[string]domain.GoalProgress) string {
	list := make([]domain.GoalProgress, 0, len(progress))
	for _, p := range progress {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].GoalName != list[j].GoalName {
			return list[i].GoalName < list[j].GoalName
		}
		return list[i].GoalID < list[j].GoalID
	})

	var b strings.Builder
	r.section(&b, "Goals")
	for _, p := range list {
		mark := r.styles.Muted.Render("o")
		if p.IsAchieved {
			mark = r.styles.Success.Render("+")
		}
		fmt.Fprintf(&b, "  %s %s %3d%%  %s\n", mark, p.GoalName, p.Progress, p.Feedback)
		for _, m := range p.Metrics {
			if m.Status.Counts() {
				continue
			}
			fmt.Fprintf(&b, "      %s\n", r.styles.Muted.Render(fmt.Sprintf("%s: %s", m.Label, m.Status)))
		}
	}
	return b.String()
}

// State renders a one-line summary of live state, plus any error.
func (r *Renderer) State(state domain.AnalysisState) string {
	var parts []string
	if !state.LastAnalysis.IsZero() {
		parts = append(parts, r.styles.Muted.Render(state.LastAnalysis.Format("15:04:05")))
	}
	parts = append(parts, fmt.Sprintf("%d words", len(readability.Words(state.LastContent))))
	if state.Readability != nil {
		parts = append(parts, fmt.Sprintf("ease %.1f", state.Readability.FleschReadingEase))
	}
	if state.Clarity != nil {
		parts = append(parts, fmt.Sprintf("clarity %.0f", state.Clarity.OverallScore))
	}
	parts = append(parts, fmt.Sprintf("%d suggestions", len(state.Suggestions)))
	if len(state.Goals) > 0 {
		achieved := 0
		for _, g := range state.Goals {
			if g.IsAchieved {
				achieved++
			}
		}
		parts = append(parts, fmt.Sprintf("goals %d/%d", achieved, len(state.Goals)))
	}
	if state.Analyzing {
		parts = append(parts, r.styles.Muted.Render("analyzing"))
	}

	line := strings.Join(parts, "  ")
	if state.LastError != "" {
		line += "\n" + r.styles.Severity(domain.SeverityError).Render("error: "+state.LastError)
	}
	return line
}

func readingTime(words int) string {
	d := readability.ReadingTime(words)
	if d < time.Minute {
		return "<1 min"
	}
	return fmt.Sprintf("%d min", int(d.Round(time.Minute).Minutes()))
}
