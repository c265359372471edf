// Package goal contains goal lifecycle use cases. Progress counters are
// owned by the progress engine; this package manages the goals themselves.
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

// CreateGoalInput represents the input for creating a reading goal.
type CreateGoalInput struct {
	UserID           uuid.UUID
	Name             string
	TargetCount      int
	StartAt          time.Time
	DeadlineAt       time.Time
	DeadlineTimezone string
}

// CreateGoalOutput represents the output of creating a reading goal.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase creates a new reading goal.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute validates and persists the goal. New goals always start active
// with zeroed counters.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"goal name is required",
			nil,
		)
	}

	if input.TargetCount < entity.MinTargetCount || input.TargetCount > entity.MaxTargetCount {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetCount,
			fmt.Sprintf("target count must be between %d and %d", entity.MinTargetCount, entity.MaxTargetCount),
			domainerror.ErrInvalidTargetCount,
		)
	}

	if input.DeadlineTimezone != "" {
		if _, err := time.LoadLocation(input.DeadlineTimezone); err != nil {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTimezone,
				fmt.Sprintf("unknown timezone %q", input.DeadlineTimezone),
				domainerror.ErrInvalidTimezone,
			)
		}
	}

	startAt := input.StartAt
	if startAt.IsZero() {
		startAt = time.Now().UTC()
	}

	if input.DeadlineAt.IsZero() || !input.DeadlineAt.After(startAt) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidDeadline,
			"deadline must be after the goal start",
			domainerror.ErrInvalidDeadline,
		)
	}

	goal := entity.NewGoal(input.UserID, strings.TrimSpace(input.Name), input.TargetCount, startAt, input.DeadlineAt, input.DeadlineTimezone)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
