package driving

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// HistoryService reads analysis history.
type HistoryService interface {
	// Recent returns up to limit records, newest first.
	// An empty chapterID returns records for every chapter.
	Recent(ctx context.Context, chapterID string, limit int) ([]domain.AnalysisRecord, error)

	// Feedback summarises accept/dismiss actions for a chapter.
	Feedback(ctx context.Context, chapterID string) (map[domain.FeedbackAction]int, error)
}
