// Package progress contains the goal-progress consistency engine.
package progress

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

func activeGoal(userID uuid.UUID, target int, deadline time.Time) *entity.Goal {
	return entity.NewGoal(userID, "test goal", target, time.Now().UTC().Add(-24*time.Hour), deadline, "UTC")
}

func completionEvent(userID uuid.UUID) valueobject.CompletionEvent {
	return valueobject.CompletionEvent{
		ReadingEntryID: uuid.New(),
		BookID:         uuid.New(),
		UserID:         userID,
		FinishedAt:     time.Now().UTC(),
	}
}

func TestRecordCompletion(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	future := time.Now().UTC().Add(30 * 24 * time.Hour)

	t.Run("credits an eligible goal and writes an audit row", func(t *testing.T) {
		store := newFakeStore()
		goalRepo := &fakeGoalRepo{store: store}
		auditRepo := &fakeAuditRepo{store: store}
		uc := NewRecordCompletionUseCase(goalRepo, auditRepo)

		goal := activeGoal(userID, 10, future)
		store.putGoal(goal)

		event := completionEvent(userID)
		output, err := uc.Execute(ctx, event)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.CreditedGoalIDs) != 1 || output.CreditedGoalIDs[0] != goal.ID {
			t.Fatalf("expected goal %s credited, got %v", goal.ID, output.CreditedGoalIDs)
		}

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 1 {
			t.Errorf("expected progress 1, got %d", updated.ProgressCount)
		}
		if updated.Status != entity.GoalStatusActive {
			t.Errorf("expected status active, got %s", updated.Status)
		}
		if store.findAudit(goal.ID, event.ReadingEntryID) == nil {
			t.Error("expected an audit row for the credited completion")
		}
	})

	t.Run("is idempotent for a repeated event", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 10, future)
		store.putGoal(goal)

		event := completionEvent(userID)
		if _, err := uc.Execute(ctx, event); err != nil {
			t.Fatalf("first call failed: %v", err)
		}
		output, err := uc.Execute(ctx, event)
		if err != nil {
			t.Fatalf("second call failed: %v", err)
		}
		if len(output.CreditedGoalIDs) != 0 {
			t.Errorf("expected second call to credit nothing, got %v", output.CreditedGoalIDs)
		}

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 1 {
			t.Errorf("expected progress 1 after duplicate event, got %d", updated.ProgressCount)
		}
		if store.auditCount() != 1 {
			t.Errorf("expected 1 audit row, got %d", store.auditCount())
		}
	})

	t.Run("auto-completes when progress reaches target", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 2, future)
		store.putGoal(goal)

		uc.Execute(ctx, completionEvent(userID))
		uc.Execute(ctx, completionEvent(userID))

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 2 {
			t.Fatalf("expected progress 2, got %d", updated.ProgressCount)
		}
		if updated.Status != entity.GoalStatusCompleted {
			t.Errorf("expected status completed, got %s", updated.Status)
		}
		if updated.CompletedAt == nil {
			t.Error("expected CompletedAt to be set")
		}
	})

	t.Run("accrues bonus beyond target", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 2, future)
		store.putGoal(goal)

		for i := 0; i < 3; i++ {
			uc.Execute(ctx, completionEvent(userID))
		}

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 3 {
			t.Errorf("expected progress 3, got %d", updated.ProgressCount)
		}
		if updated.BonusCount != 1 {
			t.Errorf("expected bonus 1, got %d", updated.BonusCount)
		}
		if updated.Status != entity.GoalStatusCompleted {
			t.Errorf("expected status completed, got %s", updated.Status)
		}
	})

	t.Run("keeps crediting a completed goal inside its window", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		completedAt := time.Now().UTC().Add(-time.Hour)
		goal := activeGoal(userID, 1, future)
		goal.ProgressCount = 1
		goal.Status = entity.GoalStatusCompleted
		goal.CompletedAt = &completedAt
		store.putGoal(goal)

		output, err := uc.Execute(ctx, completionEvent(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.CreditedGoalIDs) != 1 {
			t.Fatalf("expected the completed goal to be credited, got %v", output.CreditedGoalIDs)
		}

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 2 {
			t.Errorf("expected progress 2, got %d", updated.ProgressCount)
		}
		if updated.BonusCount != 1 {
			t.Errorf("expected bonus 1, got %d", updated.BonusCount)
		}
		if updated.CompletedAt == nil || !updated.CompletedAt.Equal(completedAt) {
			t.Errorf("expected CompletedAt to stay %v, got %v", completedAt, updated.CompletedAt)
		}
	})

	t.Run("skips an expired goal", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 10, future)
		goal.Status = entity.GoalStatusExpired
		store.putGoal(goal)

		output, err := uc.Execute(ctx, completionEvent(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.CreditedGoalIDs) != 0 {
			t.Errorf("expected no credits, got %v", output.CreditedGoalIDs)
		}
		if store.getGoal(goal.ID).ProgressCount != 0 {
			t.Error("expected expired goal to stay frozen")
		}
	})

	t.Run("skips a goal whose deadline predates the completion", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 10, time.Now().UTC().Add(-time.Hour))
		store.putGoal(goal)

		output, _ := uc.Execute(ctx, completionEvent(userID))
		if len(output.CreditedGoalIDs) != 0 {
			t.Errorf("expected no credits past the deadline, got %v", output.CreditedGoalIDs)
		}
	})

	t.Run("does not touch another user's goals", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		other := activeGoal(uuid.New(), 10, future)
		store.putGoal(other)

		uc.Execute(ctx, completionEvent(userID))
		if store.getGoal(other.ID).ProgressCount != 0 {
			t.Error("expected unrelated goal to be untouched")
		}
	})

	t.Run("retries through version conflicts", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 10, future)
		store.putGoal(goal)
		store.conflictsRemaining = 2

		output, err := uc.Execute(ctx, completionEvent(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Failures) != 0 {
			t.Fatalf("expected no failures, got %v", output.Failures)
		}
		if store.getGoal(goal.ID).ProgressCount != 1 {
			t.Errorf("expected progress 1 after retries, got %d", store.getGoal(goal.ID).ProgressCount)
		}
	})

	t.Run("reports per-goal failure when retries are exhausted", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRecordCompletionUseCase(&fakeGoalRepo{store: store}, &fakeAuditRepo{store: store})

		goal := activeGoal(userID, 10, future)
		store.putGoal(goal)
		store.conflictsRemaining = maxUpdateAttempts + 1

		output, err := uc.Execute(ctx, completionEvent(userID))
		if err != nil {
			t.Fatalf("expected per-goal failure, not a global error: %v", err)
		}
		if len(output.Failures) != 1 || output.Failures[0].GoalID != goal.ID {
			t.Fatalf("expected one failure for goal %s, got %v", goal.ID, output.Failures)
		}
	})
}
