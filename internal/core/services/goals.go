package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
)

// Ensure GoalService implements the interface.
var _ driving.GoalService = (*GoalService)(nil)

// GoalService edits the goals held in the preferences store.
// Each mutation is a load-modify-save of the whole preferences document.
type GoalService struct {
	mu    sync.Mutex
	store driven.PreferencesStore
}

// NewGoalService creates a goal service.
func NewGoalService(store driven.PreferencesStore) *GoalService {
	return &GoalService{store: store}
}

// List returns all goals, active and inactive.
func (s *GoalService) List(ctx context.Context) ([]domain.WritingGoal, error) {
	prefs, err := s.store.LoadPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return prefs.Goals, nil
}

// Get returns a goal by ID.
func (s *GoalService) Get(ctx context.Context, id string) (*domain.WritingGoal, error) {
	goals, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(goals, func(g domain.WritingGoal) bool { return g.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("goal %q: %w", id, domain.ErrNotFound)
	}
	return &goals[idx], nil
}

// Add stores a new goal. An empty ID is assigned.
func (s *GoalService) Add(ctx context.Context, goal domain.WritingGoal) (*domain.WritingGoal, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	err := s.update(ctx, func(prefs *domain.WriterPreferences) error {
		if slices.ContainsFunc(prefs.Goals, func(g domain.WritingGoal) bool { return g.ID == goal.ID }) {
			return fmt.Errorf("%w: goal %q already exists", domain.ErrInvalidInput, goal.ID)
		}
		prefs.Goals = append(prefs.Goals, goal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Remove deletes a goal by ID.
func (s *GoalService) Remove(ctx context.Context, id string) error {
	return s.update(ctx, func(prefs *domain.WriterPreferences) error {
		idx := slices.IndexFunc(prefs.Goals, func(g domain.WritingGoal) bool { return g.ID == id })
		if idx < 0 {
			return fmt.Errorf("goal %q: %w", id, domain.ErrNotFound)
		}
		prefs.Goals = slices.Delete(prefs.Goals, idx, idx+1)
		return nil
	})
}

// SetActive toggles whether a goal is evaluated.
func (s *GoalService) SetActive(ctx context.Context, id string, active bool) error {
	return s.update(ctx, func(prefs *domain.WriterPreferences) error {
		idx := slices.IndexFunc(prefs.Goals, func(g domain.WritingGoal) bool { return g.ID == id })
		if idx < 0 {
			return fmt.Errorf("goal %q: %w", id, domain.ErrNotFound)
		}
		prefs.Goals[idx].Active = active
		return nil
	})
}

// Active returns the goals that should be evaluated.
func (s *GoalService) Active(ctx context.Context) ([]domain.WritingGoal, error) {
	prefs, err := s.store.LoadPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return prefs.ActiveGoals(), nil
}

func (s *GoalService) update(ctx context.Context, mutate func(*domain.WriterPreferences) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.store.LoadPreferences(ctx)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	if err := mutate(prefs); err != nil {
		return err
	}
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
