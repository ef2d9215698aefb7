package services

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when Recent is called without a limit.
const DefaultHistoryLimit = 20

// HistoryService reads analysis history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit records, newest first.
func (s *HistoryService) Recent(ctx context.Context, chapterID string, limit int) ([]domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.ListAnalysisRecords(ctx, chapterID, limit)
}

// Feedback summarises accept/dismiss actions for a chapter.
func (s *HistoryService) Feedback(ctx context.Context, chapterID string) (map[domain.FeedbackAction]int, error) {
	return s.store.FeedbackSummary(ctx, chapterID)
}
