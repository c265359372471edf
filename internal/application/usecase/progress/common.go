// Package progress contains the goal-progress consistency engine: the
// event-driven credit/reversal path and the full-reconciliation path that
// keep goal counters synchronized with book completions.
package progress

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

const (
	// maxUpdateAttempts bounds the optimistic-concurrency retry loop on a
	// single goal row.
	maxUpdateAttempts = 5

	// retryBackoffBase is the initial backoff between retries; it doubles
	// per attempt.
	retryBackoffBase = 20 * time.Millisecond
)

// GoalUpdateFailure reports that one goal's update failed while other goals'
// updates may have succeeded. There is no cross-goal rollback.
type GoalUpdateFailure struct {
	GoalID uuid.UUID
	Err    error
}

// updateGoalWithRetry re-reads the goal and applies fn until the optimistic
// write succeeds, fn decides no write is needed, or the attempt budget runs
// out. fn returns false to signal a version conflict that warrants a
// re-read.
func updateGoalWithRetry(
	ctx context.Context,
	goalRepo adapter.GoalRepository,
	goalID uuid.UUID,
	fn func(ctx context.Context, goal *entity.Goal) (bool, error),
) error {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		goal, err := goalRepo.FindByID(ctx, goalID)
		if err != nil {
			return err
		}

		done, err := fn(ctx, goal)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		// Another writer won the race; back off before re-reading.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoffBase << attempt):
		}
	}

	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalConflict,
		"goal update conflicted repeatedly",
		domainerror.ErrGoalConflict,
	)
}

// recomputeBonus derives the bonus counter from the progress and target
// counters. Bonus is never negative.
func recomputeBonus(goal *entity.Goal) {
	bonus := goal.ProgressCount - goal.TargetCount
	if bonus < 0 {
		bonus = 0
	}
	goal.BonusCount = bonus
}

// applyCountCompletion applies the pure count-based bidirectional completion
// rule used by the reconciliation and manual-override paths: completion
// flips on and off purely by comparing progress to target, regardless of
// whether the deadline has passed. Expired goals are terminal and keep
// their status either way.
func applyCountCompletion(goal *entity.Goal, now time.Time) {
	recomputeBonus(goal)

	switch {
	case goal.Status == entity.GoalStatusActive && goal.ProgressCount >= goal.TargetCount:
		goal.Status = entity.GoalStatusCompleted
		completedAt := now
		goal.CompletedAt = &completedAt
	case goal.Status == entity.GoalStatusCompleted && goal.ProgressCount < goal.TargetCount:
		goal.Status = entity.GoalStatusActive
		goal.CompletedAt = nil
	}
}
