// Package progress contains the goal-progress consistency engine.
package progress

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// ReverseCompletionOutput reports which goals had their credit reversed and
// which goal updates failed.
type ReverseCompletionOutput struct {
	RevertedGoalIDs []uuid.UUID
	Failures        []GoalUpdateFailure
}

// ReverseCompletionUseCase exactly reverses the credits recorded for a
// reading entry when the book is un-finished. Only goals with an audit row
// for the entry are touched; a goal that was never credited is skipped.
type ReverseCompletionUseCase struct {
	goalRepo  adapter.GoalRepository
	auditRepo adapter.ProgressAuditRepository
}

// NewReverseCompletionUseCase creates a new ReverseCompletionUseCase instance.
func NewReverseCompletionUseCase(
	goalRepo adapter.GoalRepository,
	auditRepo adapter.ProgressAuditRepository,
) *ReverseCompletionUseCase {
	return &ReverseCompletionUseCase{
		goalRepo:  goalRepo,
		auditRepo: auditRepo,
	}
}

// Execute reverses the credit on every goal that was credited for the
// entry's completion. A completed goal reverts to active only while its
// deadline has not passed; once the window has closed, the completion
// stands as a historical fact and only the counters change.
func (uc *ReverseCompletionUseCase) Execute(ctx context.Context, event valueobject.UncompletionEvent) (*ReverseCompletionOutput, error) {
	audits, err := uc.auditRepo.FindByReadingEntry(ctx, event.ReadingEntryID)
	if err != nil {
		return nil, err
	}

	output := &ReverseCompletionOutput{}
	for _, audit := range audits {
		reverted, err := uc.revertGoal(ctx, audit.GoalID, event.ReadingEntryID)
		if err != nil {
			output.Failures = append(output.Failures, GoalUpdateFailure{GoalID: audit.GoalID, Err: err})
			continue
		}
		if reverted {
			output.RevertedGoalIDs = append(output.RevertedGoalIDs, audit.GoalID)
		}
	}

	return output, nil
}

// revertGoal removes one credit from one goal under the optimistic retry
// loop. It reports false without error when the audit row disappeared
// before the write, meaning a concurrent reversal already handled it.
func (uc *ReverseCompletionUseCase) revertGoal(ctx context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	reverted := false

	err := updateGoalWithRetry(ctx, uc.goalRepo, goalID, func(ctx context.Context, goal *entity.Goal) (bool, error) {
		exists, err := uc.auditRepo.ExistsByGoalAndEntry(ctx, goal.ID, readingEntryID)
		if err != nil {
			return false, err
		}
		if !exists {
			return true, nil
		}

		now := time.Now().UTC()
		expectedVersion := goal.Version

		goal.ProgressCount--
		if goal.ProgressCount < 0 {
			goal.ProgressCount = 0
		}
		recomputeBonus(goal)

		if goal.Status == entity.GoalStatusCompleted &&
			goal.ProgressCount < goal.TargetCount &&
			!goal.DeadlinePassed(now) {
			goal.Status = entity.GoalStatusActive
			goal.CompletedAt = nil
		}
		goal.UpdatedAt = now

		ok, err := uc.goalRepo.RevertGoal(ctx, goal, expectedVersion, readingEntryID)
		if err != nil {
			return false, err
		}
		if ok {
			reverted = true
		}
		return ok, nil
	})
	if err != nil {
		return false, err
	}

	return reverted, nil
}
