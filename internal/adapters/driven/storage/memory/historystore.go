package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu       sync.RWMutex
	records  []domain.AnalysisRecord
	feedback []domain.SuggestionFeedback
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// SaveAnalysisRecord stores one analysis history entry.
func (s *HistoryStore) SaveAnalysisRecord(_ context.Context, record domain.AnalysisRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	record.Categories = maps.Clone(record.Categories)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// RecordSuggestionFeedback stores what the author did with a suggestion.
func (s *HistoryStore) RecordSuggestionFeedback(_ context.Context, feedback domain.SuggestionFeedback) error {
	if feedback.ID == "" || feedback.SuggestionID == "" || !feedback.Action.IsValid() {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, feedback)
	return nil
}

// ListAnalysisRecords returns recent records for a chapter, newest first.
func (s *HistoryStore) ListAnalysisRecords(_ context.Context, chapterID string, limit int) ([]domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.AnalysisRecord
	// newest were appended last
	for _, r := range slices.Backward(s.records) {
		if chapterID != "" && r.ChapterID != chapterID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// FeedbackSummary counts feedback actions for a chapter.
func (s *HistoryStore) FeedbackSummary(_ context.Context, chapterID string) (map[domain.FeedbackAction]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := make(map[domain.FeedbackAction]int)
	for _, f := range s.feedback {
		if chapterID != "" && f.ChapterID != chapterID {
			continue
		}
		summary[f.Action]++
	}
	return summary, nil
}
