package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

var errNoHistoryService = errors.New("history service not configured")

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [chapter]",
	Short: "Show recent analyses",
	Long: `Shows the most recent analyses, newest first, with a summary of
how suggestions were handled. Without a chapter, all chapters are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum records to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(historyCmd)
}

// historyEntry is the JSON form of an analysis record.
type historyEntry struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"project_id,omitempty"`
	ChapterID   string         `json:"chapter_id,omitempty"`
	Readability float64        `json:"readability_score"`
	GradeLevel  float64        `json:"grade_level"`
	Consistency float64        `json:"consistency_score"`
	Clarity     float64        `json:"clarity_score"`
	Suggestions int            `json:"suggestion_count"`
	Categories  map[string]int `json:"categories,omitempty"`
	WordCount   int            `json:"word_count"`
	DurationMS  int64          `json:"duration_ms"`
	CreatedAt   time.Time      `json:"created_at"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNoHistoryService
	}

	chapter := ""
	if len(args) == 1 {
		chapter = args[0]
	}

	ctx := cmd.Context()
	records, err := historyService.Recent(ctx, chapter, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	feedback, err := historyService.Feedback(ctx, chapter)
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}

	if historyJSON {
		out := struct {
			Records  []historyEntry                `json:"records"`
			Feedback map[domain.FeedbackAction]int `json:"feedback"`
		}{Records: toHistoryEntries(records), Feedback: feedback}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No analyses recorded yet.")
		return nil
	}

	cmd.Printf("%-16s  %-14s  %6s  %5s  %7s  %7s  %5s\n",
		"WHEN", "CHAPTER", "WORDS", "EASE", "CLARITY", "CONSIST", "SUGG")
	for _, r := range records {
		cmd.Printf("%-16s  %-14s  %6d  %5.1f  %7.0f  %7.0f  %5d\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.ChapterID, 14),
			r.WordCount, r.ReadabilityScore, r.ClarityScore, r.ConsistencyScore, r.SuggestionCount)
	}

	cmd.Printf("\nSuggestions: %d accepted, %d dismissed, %d ignored\n",
		feedback[domain.FeedbackAccepted], feedback[domain.FeedbackDismissed], feedback[domain.FeedbackIgnored])
	return nil
}

func toHistoryEntries(records []domain.AnalysisRecord) []historyEntry {
	out := make([]historyEntry, len(records))
	for i := range records {
		r := &records[i]
		out[i] = historyEntry{
			ID:          r.ID,
			ProjectID:   r.ProjectID,
			ChapterID:   r.ChapterID,
			Readability: r.ReadabilityScore,
			GradeLevel:  r.GradeLevel,
			Consistency: r.ConsistencyScore,
			Clarity:     r.ClarityScore,
			Suggestions: r.SuggestionCount,
			Categories:  r.Categories,
			WordCount:   r.WordCount,
			DurationMS:  r.Duration.Milliseconds(),
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
