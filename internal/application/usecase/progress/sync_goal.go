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

// SyncGoalProgressInput represents the input for goal reconciliation.
type SyncGoalProgressInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// SyncGoalProgressOutput represents the output of goal reconciliation.
type SyncGoalProgressOutput struct {
	Goal *entity.Goal
}

// SyncGoalProgressUseCase recomputes a goal's progress counter straight from
// the reading-history source of truth, ignoring the incremental audit trail.
// It recovers from drift caused by deleted entries, retroactively edited
// dates, or manually set counters.
type SyncGoalProgressUseCase struct {
	goalRepo  adapter.GoalRepository
	entryRepo adapter.ReadingEntryRepository
}

// NewSyncGoalProgressUseCase creates a new SyncGoalProgressUseCase instance.
func NewSyncGoalProgressUseCase(
	goalRepo adapter.GoalRepository,
	entryRepo adapter.ReadingEntryRepository,
) *SyncGoalProgressUseCase {
	return &SyncGoalProgressUseCase{
		goalRepo:  goalRepo,
		entryRepo: entryRepo,
	}
}

// Execute performs the reconciliation. The authoritative count is the number
// of finished entries whose FinishedAt falls within the goal window, and
// completion flips both ways on the pure count comparison, deadline or not.
// Audit rows are neither read nor rebuilt here.
func (uc *SyncGoalProgressUseCase) Execute(ctx context.Context, input SyncGoalProgressInput) (*SyncGoalProgressOutput, error) {
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
			"not authorized to sync this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	var synced *entity.Goal
	err = updateGoalWithRetry(ctx, uc.goalRepo, goal.ID, func(ctx context.Context, goal *entity.Goal) (bool, error) {
		entries, err := uc.entryRepo.FindFinishedInWindow(ctx, input.UserID, goal.StartAt, goal.DeadlineAt)
		if err != nil {
			return false, fmt.Errorf("failed to count finished entries: %w", err)
		}

		now := time.Now().UTC()
		expectedVersion := goal.Version

		goal.ProgressCount = len(entries)
		applyCountCompletion(goal, now)
		goal.UpdatedAt = now

		ok, err := uc.goalRepo.UpdateWithVersion(ctx, goal, expectedVersion)
		if err != nil {
			return false, err
		}
		if ok {
			synced = goal
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}

	return &SyncGoalProgressOutput{Goal: synced}, nil
}
