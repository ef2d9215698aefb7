package driven

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// HistoryStore persists analysis history and suggestion feedback.
// Callers treat it as fire-and-forget: failures must never reach the analysis path.
type HistoryStore interface {
	// SaveAnalysisRecord stores one analysis history entry.
	SaveAnalysisRecord(ctx context.Context, record domain.AnalysisRecord) error

	// RecordSuggestionFeedback stores what the author did with a suggestion.
	RecordSuggestionFeedback(ctx context.Context, feedback domain.SuggestionFeedback) error

	// ListAnalysisRecords returns recent records for a chapter, newest first.
	// An empty chapterID lists records for all chapters.
	ListAnalysisRecords(ctx context.Context, chapterID string, limit int) ([]domain.AnalysisRecord, error)

	// FeedbackSummary counts feedback actions for a chapter.
	FeedbackSummary(ctx context.Context, chapterID string) (map[domain.FeedbackAction]int, error)
}
