// Package progress contains the goal-progress consistency engine.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// OverrideProgressInput represents the input for a manual progress edit.
type OverrideProgressInput struct {
	GoalID   uuid.UUID
	UserID   uuid.UUID
	NewCount int
}

// OverrideProgressOutput represents the output of a manual progress edit.
type OverrideProgressOutput struct {
	Goal *entity.Goal
}

// OverrideProgressUseCase sets a goal's progress counter to a caller-chosen
// value. It applies the same pure count-based bidirectional completion rule
// as reconciliation, and leaves the audit trail untouched; a later sync can
// overwrite the manual value from source data.
type OverrideProgressUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewOverrideProgressUseCase creates a new OverrideProgressUseCase instance.
func NewOverrideProgressUseCase(goalRepo adapter.GoalRepository) *OverrideProgressUseCase {
	return &OverrideProgressUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the manual progress edit.
func (uc *OverrideProgressUseCase) Execute(ctx context.Context, input OverrideProgressInput) (*OverrideProgressOutput, error) {
	if input.NewCount < 0 {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidProgressCount,
			"progress count must not be negative",
			domainerror.ErrInvalidProgressCount,
		)
	}

	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != input.UserID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoal,
			"not authorized to modify this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	var updated *entity.Goal
	err = updateGoalWithRetry(ctx, uc.goalRepo, goal.ID, func(ctx context.Context, goal *entity.Goal) (bool, error) {
		now := time.Now().UTC()
		expectedVersion := goal.Version

		goal.ProgressCount = input.NewCount
		applyCountCompletion(goal, now)
		goal.UpdatedAt = now

		ok, err := uc.goalRepo.UpdateWithVersion(ctx, goal, expectedVersion)
		if err != nil {
			return false, err
		}
		if ok {
			updated = goal
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}

	return &OverrideProgressOutput{Goal: updated}, nil
}
