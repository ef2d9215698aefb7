package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// ==================== History Store Tests ====================

func TestHistoryStore_ListNewestFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for _, r := range []domain.AnalysisRecord{
		{ID: "a", ChapterID: "ch1"},
		{ID: "b", ChapterID: "ch2"},
		{ID: "c", ChapterID: "ch1"},
		{ID: "d", ChapterID: "ch1"},
	} {
		require.NoError(t, store.SaveAnalysisRecord(ctx, r))
	}

	records, err := store.ListAnalysisRecords(ctx, "ch1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "d", records[0].ID)
	assert.Equal(t, "c", records[1].ID)

	all, err := store.ListAnalysisRecords(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestHistoryStore_RecordIsCopied(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	categories := map[string]int{"grammar": 1}

	require.NoError(t, store.SaveAnalysisRecord(ctx, domain.AnalysisRecord{ID: "a", Categories: categories}))
	categories["grammar"] = 99

	records, err := store.ListAnalysisRecords(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, records[0].Categories["grammar"])
}

func TestHistoryStore_Validation(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveAnalysisRecord(ctx, domain.AnalysisRecord{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.RecordSuggestionFeedback(ctx, domain.SuggestionFeedback{
		ID: "f", SuggestionID: "s", Action: "unknown",
	}), domain.ErrInvalidInput)
}

func TestHistoryStore_FeedbackSummary(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for _, f := range []domain.SuggestionFeedback{
		{ID: "1", SuggestionID: "s1", ChapterID: "ch1", Action: domain.FeedbackAccepted},
		{ID: "2", SuggestionID: "s2", ChapterID: "ch1", Action: domain.FeedbackDismissed},
		{ID: "3", SuggestionID: "s3", ChapterID: "ch2", Action: domain.FeedbackAccepted},
	} {
		require.NoError(t, store.RecordSuggestionFeedback(ctx, f))
	}

	summary, err := store.FeedbackSummary(ctx, "ch1")
	require.NoError(t, err)
	assert.Equal(t, map[domain.FeedbackAction]int{
		domain.FeedbackAccepted:  1,
		domain.FeedbackDismissed: 1,
	}, summary)

	all, err := store.FeedbackSummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all[domain.FeedbackAccepted])
}

// ==================== Preferences Store Tests ====================

func TestPreferencesStore_RoundTrip(t *testing.T) {
	store := NewPreferencesStore()
	ctx := context.Background()

	empty, err := store.LoadPreferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Goals)

	prefs := &domain.WriterPreferences{
		Session: domain.Session{ProjectID: "p", ChapterID: "c"},
		Goals:   []domain.WritingGoal{{ID: "g1", Name: "Tight prose", Active: true}},
	}
	require.NoError(t, store.SavePreferences(ctx, prefs))

	// mutating the saved value must not leak into the store
	prefs.Goals[0].Name = "changed"

	loaded, err := store.LoadPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", loaded.Session.ChapterID)
	assert.Equal(t, "Tight prose", loaded.Goals[0].Name)

	assert.ErrorIs(t, store.SavePreferences(ctx, nil), domain.ErrInvalidInput)
}
