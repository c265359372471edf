// Package goal contains goal lifecycle use cases.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for editing a goal. Nil fields are
// left unchanged.
type UpdateGoalInput struct {
	GoalID           uuid.UUID
	UserID           uuid.UUID
	Name             *string
	TargetCount      *int
	DeadlineAt       *time.Time
	DeadlineTimezone *string
}

// UpdateGoalOutput represents the output of editing a goal.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase edits goal metadata. Raising or lowering the target on
// a goal that already has progress re-evaluates its completion state the
// same way a manual counter override would.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute applies the edits under the goal's version guard. A concurrent
// counter update surfaces as a conflict for the client to retry rather
// than being silently overwritten.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if goal.Status == entity.GoalStatusExpired {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalExpired,
			"an expired goal can no longer be edited",
			domainerror.ErrGoalExpired,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"goal name is required",
				nil,
			)
		}
		goal.Name = name
	}

	if input.TargetCount != nil {
		if *input.TargetCount < entity.MinTargetCount || *input.TargetCount > entity.MaxTargetCount {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetCount,
				fmt.Sprintf("target count must be between %d and %d", entity.MinTargetCount, entity.MaxTargetCount),
				domainerror.ErrInvalidTargetCount,
			)
		}
		goal.TargetCount = *input.TargetCount
	}

	if input.DeadlineTimezone != nil {
		if _, err := time.LoadLocation(*input.DeadlineTimezone); err != nil {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTimezone,
				fmt.Sprintf("unknown timezone %q", *input.DeadlineTimezone),
				domainerror.ErrInvalidTimezone,
			)
		}
		goal.DeadlineTimezone = *input.DeadlineTimezone
	}

	if input.DeadlineAt != nil {
		if !input.DeadlineAt.After(goal.StartAt) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidDeadline,
				"deadline must be after the goal start",
				domainerror.ErrInvalidDeadline,
			)
		}
		goal.DeadlineAt = input.DeadlineAt.UTC()
	}

	// A target change can move the goal across the completion line in
	// either direction.
	goal.BonusCount = goal.ProgressCount - goal.TargetCount
	if goal.BonusCount < 0 {
		goal.BonusCount = 0
	}
	now := time.Now().UTC()
	switch {
	case goal.Status == entity.GoalStatusActive && goal.ProgressCount >= goal.TargetCount:
		goal.Status = entity.GoalStatusCompleted
		goal.CompletedAt = &now
	case goal.Status == entity.GoalStatusCompleted && goal.ProgressCount < goal.TargetCount:
		goal.Status = entity.GoalStatusActive
		goal.CompletedAt = nil
	}
	goal.UpdatedAt = now

	ok, err := uc.goalRepo.UpdateWithVersion(ctx, goal, goal.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	if !ok {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalConflict,
			"goal was modified concurrently, retry the edit",
			domainerror.ErrGoalConflict,
		)
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
