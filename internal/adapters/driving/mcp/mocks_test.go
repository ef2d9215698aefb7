package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// mockCoordinator is a mock implementation of driving.AnalysisCoordinator.
type mockCoordinator struct {
	mu      sync.Mutex
	results *domain.AnalysisResults
	err     error
	state   domain.AnalysisState
	config  domain.AnalysisConfig
	texts   []string
	kinds   [][]domain.AnalysisKind
}

func newMockCoordinator(results *domain.AnalysisResults) *mockCoordinator {
	return &mockCoordinator{results: results, config: domain.DefaultAnalysisConfig()}
}

func (m *mockCoordinator) Start(context.Context) error { return nil }

func (m *mockCoordinator) Stop() {}

func (m *mockCoordinator) Running() bool { return true }

func (m *mockCoordinator) UpdateContent(string) {}

func (m *mockCoordinator) AnalyzeNow(
	_ context.Context,
	text string,
	kinds ...domain.AnalysisKind,
) (*domain.AnalysisResults, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	m.kinds = append(m.kinds, kinds)
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return &domain.AnalysisResults{}, nil
	}
	return m.results, nil
}

func (m *mockCoordinator) AcceptSuggestion(string) bool { return false }

func (m *mockCoordinator) DismissSuggestion(string) bool { return false }

func (m *mockCoordinator) State() domain.AnalysisState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockCoordinator) Subscribe() (<-chan domain.AnalysisState, func()) {
	ch := make(chan domain.AnalysisState)
	return ch, func() { close(ch) }
}

func (m *mockCoordinator) SetSession(domain.Session) {}

func (m *mockCoordinator) SetGoals([]domain.WritingGoal) {}

func (m *mockCoordinator) Config() domain.AnalysisConfig { return m.config }

// mockGoalService is a mock implementation of driving.GoalService.
type mockGoalService struct {
	goals []domain.WritingGoal
	err   error
}

func (m *mockGoalService) List(context.Context) ([]domain.WritingGoal, error) {
	return m.goals, m.err
}

func (m *mockGoalService) Get(context.Context, string) (*domain.WritingGoal, error) {
	return nil, domain.ErrNotFound
}

func (m *mockGoalService) Add(_ context.Context, g domain.WritingGoal) (*domain.WritingGoal, error) {
	return &g, m.err
}

func (m *mockGoalService) Remove(context.Context, string) error { return m.err }

func (m *mockGoalService) SetActive(context.Context, string, bool) error { return m.err }

func (m *mockGoalService) Active(context.Context) ([]domain.WritingGoal, error) {
	return m.goals, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records   []domain.AnalysisRecord
	err       error
	chapterID string
	limit     int
}

func (m *mockHistoryService) Recent(_ context.Context, chapterID string, limit int) ([]domain.AnalysisRecord, error) {
	m.chapterID = chapterID
	m.limit = limit
	return m.records, m.err
}

func (m *mockHistoryService) Feedback(context.Context, string) (map[domain.FeedbackAction]int, error) {
	return nil, m.err
}
