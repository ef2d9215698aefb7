package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// defaultListLimit applies when ListAnalysisRecords is called without a limit.
const defaultListLimit = 50

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// SaveAnalysisRecord stores one analysis history entry.
func (s *historyStore) SaveAnalysisRecord(ctx context.Context, record domain.AnalysisRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}

	categories := record.Categories
	if categories == nil {
		categories = map[string]int{}
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshalling categories: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO analysis_records (
			id, project_id, chapter_id, readability_score, grade_level, consistency_score,
			clarity_score, suggestion_count, categories, accepted_count, dismissed_count,
			word_count, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.ProjectID, record.ChapterID,
		record.ReadabilityScore, record.GradeLevel, record.ConsistencyScore, record.ClarityScore,
		record.SuggestionCount, string(categoriesJSON), record.AcceptedCount, record.DismissedCount,
		record.WordCount, record.Duration.Milliseconds(), formatTime(record.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving analysis record: %w", err)
	}
	return nil
}

// RecordSuggestionFeedback stores what the author did with a suggestion.
func (s *historyStore) RecordSuggestionFeedback(ctx context.Context, feedback domain.SuggestionFeedback) error {
	if feedback.ID == "" || feedback.SuggestionID == "" {
		return domain.ErrInvalidInput
	}
	if !feedback.Action.IsValid() {
		return fmt.Errorf("%w: unknown feedback action %q", domain.ErrInvalidInput, feedback.Action)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO suggestion_feedback (
			id, suggestion_id, project_id, chapter_id, action, kind,
			suggestion_type, original_text, applied_text, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, feedback.ID, feedback.SuggestionID, feedback.ProjectID, feedback.ChapterID,
		string(feedback.Action), string(feedback.Kind), feedback.SuggestionType,
		feedback.OriginalText, feedback.AppliedText, formatTime(feedback.CreatedAt))
	if err != nil {
		return fmt.Errorf("recording suggestion feedback: %w", err)
	}
	return nil
}

// ListAnalysisRecords returns recent records for a chapter, newest first.
// An empty chapterID lists records for all chapters.
func (s *historyStore) ListAnalysisRecords(
	ctx context.Context,
	chapterID string,
	limit int,
) ([]domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, project_id, chapter_id, readability_score, grade_level, consistency_score,
			clarity_score, suggestion_count, categories, accepted_count, dismissed_count,
			word_count, duration_ms, created_at
		FROM analysis_records
		WHERE ? = '' OR chapter_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, chapterID, chapterID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying analysis records: %w", err)
	}
	defer rows.Close()

	var records []domain.AnalysisRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanAnalysisRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis records: %w", err)
	}

	return records, nil
}

// FeedbackSummary counts feedback actions for a chapter.
// An empty chapterID counts feedback for all chapters.
func (s *historyStore) FeedbackSummary(ctx context.Context, chapterID string) (map[domain.FeedbackAction]int, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT action, COUNT(*)
		FROM suggestion_feedback
		WHERE ? = '' OR chapter_id = ?
		GROUP BY action
	`, chapterID, chapterID)
	if err != nil {
		return nil, fmt.Errorf("querying feedback summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[domain.FeedbackAction]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("scanning feedback summary: %w", err)
		}
		summary[domain.FeedbackAction(action)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback summary: %w", err)
	}

	return summary, nil
}

// ==================== Helper Functions ====================

// scanAnalysisRecord scans an analysis record from *sql.Rows.
func scanAnalysisRecord(rows *sql.Rows) (*domain.AnalysisRecord, error) {
	var record domain.AnalysisRecord
	var categoriesJSON string
	var durationMS, createdAt int64

	if err := rows.Scan(&record.ID, &record.ProjectID, &record.ChapterID,
		&record.ReadabilityScore, &record.GradeLevel, &record.ConsistencyScore, &record.ClarityScore,
		&record.SuggestionCount, &categoriesJSON, &record.AcceptedCount, &record.DismissedCount,
		&record.WordCount, &durationMS, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning analysis record: %w", err)
	}

	record.Categories = map[string]int{}
	if err := json.Unmarshal([]byte(categoriesJSON), &record.Categories); err != nil {
		return nil, fmt.Errorf("unmarshalling categories: %w", err)
	}
	record.Duration = time.Duration(durationMS) * time.Millisecond
	record.CreatedAt = parseTime(createdAt)

	return &record, nil
}

// formatTime stores times as Unix nanoseconds so they sort numerically.
func formatTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

// parseTime is the inverse of formatTime.
func parseTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
