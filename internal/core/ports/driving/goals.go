package driving

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// GoalService manages the writer's goals.
type GoalService interface {
	// List returns all goals, active and inactive.
	List(ctx context.Context) ([]domain.WritingGoal, error)

	// Get returns a goal by ID.
	Get(ctx context.Context, id string) (*domain.WritingGoal, error)

	// Add stores a new goal. An empty ID is assigned.
	Add(ctx context.Context, goal domain.WritingGoal) (*domain.WritingGoal, error)

	// Remove deletes a goal by ID.
	Remove(ctx context.Context, id string) error

	// SetActive toggles whether a goal is evaluated.
	SetActive(ctx context.Context, id string, active bool) error

	// Active returns the goals that should be evaluated.
	Active(ctx context.Context) ([]domain.WritingGoal, error)
}
