package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// mockCoordinator is a mock implementation of driving.AnalysisCoordinator.
type mockCoordinator struct {
	mu      sync.Mutex
	results *domain.AnalysisResults
	err     error
	texts   []string
	kinds   [][]domain.AnalysisKind
	goals   []domain.WritingGoal
}

func (m *mockCoordinator) Start(context.Context) error { return nil }

func (m *mockCoordinator) Stop() {}

func (m *mockCoordinator) Running() bool { return false }

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

func (m *mockCoordinator) State() domain.AnalysisState { return domain.AnalysisState{} }

func (m *mockCoordinator) Subscribe() (<-chan domain.AnalysisState, func()) {
	ch := make(chan domain.AnalysisState)
	return ch, func() {}
}

func (m *mockCoordinator) SetSession(domain.Session) {}

func (m *mockCoordinator) SetGoals(goals []domain.WritingGoal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = goals
}

func (m *mockCoordinator) Config() domain.AnalysisConfig { return domain.DefaultAnalysisConfig() }

// mockGoalService is a mock implementation of driving.GoalService.
type mockGoalService struct {
	mu      sync.Mutex
	goals   []domain.WritingGoal
	added   []domain.WritingGoal
	removed []string
	active  map[string]bool
	err     error
}

func (m *mockGoalService) List(context.Context) ([]domain.WritingGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goals, m.err
}

func (m *mockGoalService) Get(context.Context, string) (*domain.WritingGoal, error) {
	return nil, domain.ErrNotFound
}

func (m *mockGoalService) Add(_ context.Context, g domain.WritingGoal) (*domain.WritingGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.ID = "goal-1"
	m.added = append(m.added, g)
	return &g, nil
}

func (m *mockGoalService) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, id)
	return m.err
}

func (m *mockGoalService) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		m.active = make(map[string]bool)
	}
	m.active[id] = active
	return m.err
}

func (m *mockGoalService) Active(context.Context) ([]domain.WritingGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.WritingGoal
	for _, g := range m.goals {
		if g.Active {
			out = append(out, g)
		}
	}
	return out, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records   []domain.AnalysisRecord
	feedback  map[domain.FeedbackAction]int
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
	return m.feedback, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	set         map[string]string
	setErr      error
	validateErr error
	llmErr      error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"analysis.enabled", "llm.provider"}
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.llmErr }

// execute runs the root command with services installed and returns stdout.
func execute(t *testing.T, s *Services, stdin string, args ...string) (string, error) {
	t.Helper()

	SetBootstrap(nil)
	SetServices(s)

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		SetServices(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
