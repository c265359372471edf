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

// RecordCompletionOutput reports which goals were credited for a completion
// event and which goal updates failed. Successes are preserved even when
// other goals fail.
type RecordCompletionOutput struct {
	CreditedGoalIDs []uuid.UUID
	Failures        []GoalUpdateFailure
}

// RecordCompletionUseCase credits every eligible goal for one book
// completion, exactly once per (goal, reading entry) pair.
type RecordCompletionUseCase struct {
	goalRepo  adapter.GoalRepository
	auditRepo adapter.ProgressAuditRepository
}

// NewRecordCompletionUseCase creates a new RecordCompletionUseCase instance.
func NewRecordCompletionUseCase(
	goalRepo adapter.GoalRepository,
	auditRepo adapter.ProgressAuditRepository,
) *RecordCompletionUseCase {
	return &RecordCompletionUseCase{
		goalRepo:  goalRepo,
		auditRepo: auditRepo,
	}
}

// Execute credits each of the user's eligible goals for the completion.
// Eligibility is re-derived from the repository at call time: a goal counts
// iff it is not expired and its deadline had not passed at the completion
// instant. Crediting an already-completed goal grows its bonus. Each goal
// is updated independently; one goal failing does not roll back the others.
func (uc *RecordCompletionUseCase) Execute(ctx context.Context, event valueobject.CompletionEvent) (*RecordCompletionOutput, error) {
	goals, err := uc.goalRepo.FindEligibleGoals(ctx, event.UserID, event.FinishedAt)
	if err != nil {
		return nil, err
	}

	output := &RecordCompletionOutput{}
	for _, goal := range goals {
		credited, err := uc.creditGoal(ctx, goal.ID, event)
		if err != nil {
			output.Failures = append(output.Failures, GoalUpdateFailure{GoalID: goal.ID, Err: err})
			continue
		}
		if credited {
			output.CreditedGoalIDs = append(output.CreditedGoalIDs, goal.ID)
		}
	}

	return output, nil
}

// creditGoal applies one credit to one goal under the optimistic retry loop.
// It reports false without error when the goal turned out not to need the
// credit: it was already credited for this entry, or it stopped being
// eligible between listing and the read inside the loop.
func (uc *RecordCompletionUseCase) creditGoal(ctx context.Context, goalID uuid.UUID, event valueobject.CompletionEvent) (bool, error) {
	credited := false

	err := updateGoalWithRetry(ctx, uc.goalRepo, goalID, func(ctx context.Context, goal *entity.Goal) (bool, error) {
		if !goal.IsEligibleAt(event.FinishedAt) {
			return true, nil
		}

		// Idempotency: a retried or duplicated event must not double-credit.
		exists, err := uc.auditRepo.ExistsByGoalAndEntry(ctx, goal.ID, event.ReadingEntryID)
		if err != nil {
			return false, err
		}
		if exists {
			return true, nil
		}

		now := time.Now().UTC()
		expectedVersion := goal.Version

		goal.ProgressCount++
		recomputeBonus(goal)
		if goal.ProgressCount >= goal.TargetCount && goal.Status != entity.GoalStatusCompleted {
			goal.Status = entity.GoalStatusCompleted
			completedAt := now
			goal.CompletedAt = &completedAt
		}
		goal.UpdatedAt = now

		audit := entity.NewProgressAuditEntry(goal.ID, event.ReadingEntryID, event.BookID)
		ok, err := uc.goalRepo.CreditGoal(ctx, goal, expectedVersion, audit)
		if err != nil {
			return false, err
		}
		if ok {
			credited = true
		}
		return ok, nil
	})
	if err != nil {
		return false, err
	}

	return credited, nil
}
