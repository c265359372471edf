// Package goal contains goal lifecycle use cases.
package goal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// ListGoalsInput represents the input for listing a user's goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// GoalWithProgress pairs a goal with its derived progress snapshot.
type GoalWithProgress struct {
	Goal     *entity.Goal
	Progress valueobject.GoalProgress
}

// ListGoalsOutput represents the output of listing a user's goals.
type ListGoalsOutput struct {
	Goals []GoalWithProgress
}

// ListGoalsUseCase lists all of a user's goals with progress views.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute lists the goals, nearest deadline first.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].DeadlineAt.Before(goals[j].DeadlineAt)
	})

	now := time.Now().UTC()
	output := &ListGoalsOutput{Goals: make([]GoalWithProgress, 0, len(goals))}
	for _, g := range goals {
		output.Goals = append(output.Goals, GoalWithProgress{
			Goal:     g,
			Progress: valueobject.CalculateGoalProgress(g, now),
		})
	}

	return output, nil
}
