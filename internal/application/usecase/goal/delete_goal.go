// Package goal contains goal lifecycle use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
)

// DeleteGoalInput represents the input for deleting a goal.
type DeleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteGoalOutput represents the output of deleting a goal.
type DeleteGoalOutput struct{}

// DeleteGoalUseCase deletes a goal and its audit trail. Reading entries are
// untouched; only the goal's own accounting disappears.
type DeleteGoalUseCase struct {
	goalRepo  adapter.GoalRepository
	auditRepo adapter.ProgressAuditRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, auditRepo adapter.ProgressAuditRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo:  goalRepo,
		auditRepo: auditRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) (*DeleteGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.auditRepo.DeleteByGoal(ctx, goal.ID); err != nil {
		return nil, fmt.Errorf("failed to delete goal audit rows: %w", err)
	}
	if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
		return nil, fmt.Errorf("failed to delete goal: %w", err)
	}

	return &DeleteGoalOutput{}, nil
}
