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

func TestReverseCompletion(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	future := time.Now().UTC().Add(30 * 24 * time.Hour)

	setup := func(target int, deadline time.Time) (*fakeStore, *RecordCompletionUseCase, *ReverseCompletionUseCase, *entity.Goal) {
		store := newFakeStore()
		goalRepo := &fakeGoalRepo{store: store}
		auditRepo := &fakeAuditRepo{store: store}
		record := NewRecordCompletionUseCase(goalRepo, auditRepo)
		reverse := NewReverseCompletionUseCase(goalRepo, auditRepo)
		goal := activeGoal(userID, target, deadline)
		store.putGoal(goal)
		return store, record, reverse, goal
	}

	t.Run("exactly reverses a single credit", func(t *testing.T) {
		store, record, reverse, goal := setup(10, future)

		event := completionEvent(userID)
		if _, err := record.Execute(ctx, event); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		output, err := reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: event.ReadingEntryID})
		if err != nil {
			t.Fatalf("reverse failed: %v", err)
		}
		if len(output.RevertedGoalIDs) != 1 {
			t.Fatalf("expected one reverted goal, got %v", output.RevertedGoalIDs)
		}

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 0 || updated.BonusCount != 0 {
			t.Errorf("expected counters restored to 0/0, got %d/%d", updated.ProgressCount, updated.BonusCount)
		}
		if store.auditCount() != 0 {
			t.Errorf("expected audit row deleted, %d remain", store.auditCount())
		}
	})

	t.Run("uncompleting a bonus book keeps the goal completed", func(t *testing.T) {
		store, record, reverse, goal := setup(2, future)

		events := make([]valueobject.CompletionEvent, 3)
		for i := range events {
			events[i] = completionEvent(userID)
			record.Execute(ctx, events[i])
		}

		// Reverse the 3rd (bonus) completion: 3/1 completed -> 2/0 completed.
		reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: events[2].ReadingEntryID})

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 2 {
			t.Errorf("expected progress 2, got %d", updated.ProgressCount)
		}
		if updated.BonusCount != 0 {
			t.Errorf("expected bonus 0, got %d", updated.BonusCount)
		}
		if updated.Status != entity.GoalStatusCompleted {
			t.Errorf("expected status to remain completed, got %s", updated.Status)
		}
	})

	t.Run("uncompleting an early book only sheds the bonus", func(t *testing.T) {
		store, record, reverse, goal := setup(2, future)

		events := make([]valueobject.CompletionEvent, 3)
		for i := range events {
			events[i] = completionEvent(userID)
			record.Execute(ctx, events[i])
		}

		// Reverse the 1st completion: 3/1 completed -> 2/0, still at target.
		reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: events[0].ReadingEntryID})

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 2 {
			t.Errorf("expected progress 2, got %d", updated.ProgressCount)
		}
		if updated.BonusCount != 0 {
			t.Errorf("expected bonus 0, got %d", updated.BonusCount)
		}
		if updated.Status != entity.GoalStatusCompleted {
			t.Errorf("expected status to remain completed, got %s", updated.Status)
		}
		if updated.CompletedAt == nil {
			t.Error("expected CompletedAt to survive the reversal")
		}
	})

	t.Run("reverts completion before the deadline", func(t *testing.T) {
		store, record, reverse, goal := setup(1, future)

		event := completionEvent(userID)
		record.Execute(ctx, event)
		if store.getGoal(goal.ID).Status != entity.GoalStatusCompleted {
			t.Fatal("expected goal completed before reversal")
		}

		reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: event.ReadingEntryID})

		updated := store.getGoal(goal.ID)
		if updated.Status != entity.GoalStatusActive {
			t.Errorf("expected status active, got %s", updated.Status)
		}
		if updated.CompletedAt != nil {
			t.Error("expected CompletedAt cleared")
		}
	})

	t.Run("preserves completion after the deadline", func(t *testing.T) {
		store, record, reverse, goal := setup(1, future)

		event := completionEvent(userID)
		record.Execute(ctx, event)

		// Close the window before the uncompletion arrives.
		completed := store.getGoal(goal.ID)
		completed.DeadlineAt = time.Now().UTC().Add(-time.Hour)
		store.putGoal(completed)

		reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: event.ReadingEntryID})

		updated := store.getGoal(goal.ID)
		if updated.Status != entity.GoalStatusCompleted {
			t.Errorf("expected completion to stand after the deadline, got %s", updated.Status)
		}
		if updated.CompletedAt == nil {
			t.Error("expected CompletedAt preserved")
		}
		if updated.ProgressCount != 0 {
			t.Errorf("expected counter still reversed, got %d", updated.ProgressCount)
		}
	})

	t.Run("silently skips goals never credited", func(t *testing.T) {
		store, _, reverse, goal := setup(10, future)

		output, err := reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: uuid.New()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.RevertedGoalIDs) != 0 || len(output.Failures) != 0 {
			t.Errorf("expected a no-op, got %+v", output)
		}
		if store.getGoal(goal.ID).ProgressCount != 0 {
			t.Error("expected uncredited goal untouched")
		}
	})

	t.Run("full scenario: complete ten books then unfinish one", func(t *testing.T) {
		store, record, reverse, goal := setup(10, future)

		events := make([]valueobject.CompletionEvent, 10)
		for i := range events {
			events[i] = completionEvent(userID)
			record.Execute(ctx, events[i])
		}

		completed := store.getGoal(goal.ID)
		if completed.ProgressCount != 10 || completed.Status != entity.GoalStatusCompleted || completed.CompletedAt == nil {
			t.Fatalf("expected 10/completed with CompletedAt set, got %d/%s", completed.ProgressCount, completed.Status)
		}

		reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: events[4].ReadingEntryID})

		updated := store.getGoal(goal.ID)
		if updated.ProgressCount != 9 {
			t.Errorf("expected progress 9, got %d", updated.ProgressCount)
		}
		if updated.Status != entity.GoalStatusActive {
			t.Errorf("expected status active, got %s", updated.Status)
		}
		if updated.CompletedAt != nil {
			t.Error("expected CompletedAt cleared")
		}
	})
}
