// Package progress contains the goal-progress consistency engine.
package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// finishedEntry seeds a finished reading entry inside the given window.
func finishedEntry(store *fakeStore, userID uuid.UUID, finishedAt time.Time) {
	entry := entity.NewReadingEntry(userID, uuid.New())
	entry.Status = entity.StatusFinished
	entry.FinishedAt = &finishedAt
	store.entries = append(store.entries, entry)
}

func TestSyncGoalProgress(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	future := time.Now().UTC().Add(30 * 24 * time.Hour)

	setup := func(goal *entity.Goal) (*fakeStore, *SyncGoalProgressUseCase) {
		store := newFakeStore()
		store.putGoal(goal)
		uc := NewSyncGoalProgressUseCase(&fakeGoalRepo{store: store}, &fakeEntryRepo{store: store})
		return store, uc
	}

	t.Run("converges a drifted counter down to the source count", func(t *testing.T) {
		goal := activeGoal(userID, 20, future)
		goal.ProgressCount = 10
		store, uc := setup(goal)

		for i := 0; i < 7; i++ {
			finishedEntry(store, userID, time.Now().UTC())
		}

		output, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: goal.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.ProgressCount != 7 {
			t.Errorf("expected progress 7, got %d", output.Goal.ProgressCount)
		}
		if output.Goal.Status != entity.GoalStatusActive {
			t.Errorf("expected status active, got %s", output.Goal.Status)
		}
	})

	t.Run("un-completes a completed goal when the true count drops, even past the deadline", func(t *testing.T) {
		goal := activeGoal(userID, 20, time.Now().UTC().Add(-time.Hour))
		goal.ProgressCount = 20
		goal.Status = entity.GoalStatusCompleted
		completedAt := time.Now().UTC().Add(-48 * time.Hour)
		goal.CompletedAt = &completedAt
		store, uc := setup(goal)

		for i := 0; i < 15; i++ {
			finishedEntry(store, userID, goal.StartAt.Add(time.Hour))
		}

		output, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: goal.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.ProgressCount != 15 {
			t.Errorf("expected progress 15, got %d", output.Goal.ProgressCount)
		}
		if output.Goal.Status != entity.GoalStatusActive {
			t.Errorf("expected pure count-based reversal to active, got %s", output.Goal.Status)
		}
		if output.Goal.CompletedAt != nil {
			t.Error("expected CompletedAt cleared")
		}
	})

	t.Run("marks a goal complete when the true count reaches target", func(t *testing.T) {
		goal := activeGoal(userID, 3, future)
		store, uc := setup(goal)

		for i := 0; i < 4; i++ {
			finishedEntry(store, userID, time.Now().UTC())
		}

		output, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: goal.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.Status != entity.GoalStatusCompleted {
			t.Errorf("expected status completed, got %s", output.Goal.Status)
		}
		if output.Goal.BonusCount != 1 {
			t.Errorf("expected bonus 1, got %d", output.Goal.BonusCount)
		}
		if output.Goal.CompletedAt == nil {
			t.Error("expected CompletedAt set")
		}
	})

	t.Run("ignores completions outside the goal window", func(t *testing.T) {
		goal := activeGoal(userID, 5, future)
		store, uc := setup(goal)

		finishedEntry(store, userID, goal.StartAt.Add(-time.Hour))   // before the window
		finishedEntry(store, userID, goal.DeadlineAt.Add(time.Hour)) // after the window
		finishedEntry(store, userID, goal.StartAt.Add(time.Hour))    // inside

		output, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: goal.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.ProgressCount != 1 {
			t.Errorf("expected only the in-window completion counted, got %d", output.Goal.ProgressCount)
		}
	})

	t.Run("leaves an expired goal's status untouched", func(t *testing.T) {
		goal := activeGoal(userID, 2, time.Now().UTC().Add(-time.Hour))
		goal.Status = entity.GoalStatusExpired
		store, uc := setup(goal)

		for i := 0; i < 3; i++ {
			finishedEntry(store, userID, goal.StartAt.Add(time.Hour))
		}

		output, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: goal.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.ProgressCount != 3 {
			t.Errorf("expected counter resynced, got %d", output.Goal.ProgressCount)
		}
		if output.Goal.Status != entity.GoalStatusExpired {
			t.Errorf("expected expired to stay terminal, got %s", output.Goal.Status)
		}
	})

	t.Run("rejects another user's goal", func(t *testing.T) {
		goal := activeGoal(userID, 5, future)
		_, uc := setup(goal)

		_, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: goal.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrUnauthorizedGoalAccess) {
			t.Fatalf("expected unauthorized error, got %v", err)
		}
	})

	t.Run("returns not found for an unknown goal", func(t *testing.T) {
		_, uc := setup(activeGoal(userID, 5, future))

		_, err := uc.Execute(ctx, SyncGoalProgressInput{GoalID: uuid.New(), UserID: userID})
		if !errors.Is(err, domainerror.ErrGoalNotFound) {
			t.Fatalf("expected not found error, got %v", err)
		}
	})
}

func TestOverrideProgress(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	future := time.Now().UTC().Add(30 * 24 * time.Hour)

	t.Run("applies the bidirectional rule to a manual value", func(t *testing.T) {
		store := newFakeStore()
		goal := activeGoal(userID, 5, future)
		store.putGoal(goal)
		uc := NewOverrideProgressUseCase(&fakeGoalRepo{store: store})

		output, err := uc.Execute(ctx, OverrideProgressInput{GoalID: goal.ID, UserID: userID, NewCount: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.Status != entity.GoalStatusCompleted || output.Goal.BonusCount != 2 {
			t.Errorf("expected completed with bonus 2, got %s/%d", output.Goal.Status, output.Goal.BonusCount)
		}

		output, err = uc.Execute(ctx, OverrideProgressInput{GoalID: goal.ID, UserID: userID, NewCount: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.Status != entity.GoalStatusActive || output.Goal.CompletedAt != nil {
			t.Errorf("expected reverted to active, got %s", output.Goal.Status)
		}
		if output.Goal.BonusCount != 0 {
			t.Errorf("expected bonus 0, got %d", output.Goal.BonusCount)
		}
	})

	t.Run("rejects a negative count", func(t *testing.T) {
		store := newFakeStore()
		goal := activeGoal(userID, 5, future)
		store.putGoal(goal)
		uc := NewOverrideProgressUseCase(&fakeGoalRepo{store: store})

		_, err := uc.Execute(ctx, OverrideProgressInput{GoalID: goal.ID, UserID: userID, NewCount: -1})
		if !errors.Is(err, domainerror.ErrInvalidProgressCount) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
