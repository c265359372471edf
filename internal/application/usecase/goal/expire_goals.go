// Package goal contains goal lifecycle use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
)

// ExpireGoalsInput represents the input for an expiry pass. AsOf defaults
// to the current time.
type ExpireGoalsInput struct {
	AsOf time.Time
}

// ExpireGoalsOutput reports which goals the pass expired.
type ExpireGoalsOutput struct {
	ExpiredGoalIDs []uuid.UUID
}

// ExpireGoalsUseCase marks active goals whose deadline passed with the
// target unmet as expired. Expired is terminal; later completions or
// reversals never touch these goals again. The pass runs periodically and
// is safe to repeat.
type ExpireGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewExpireGoalsUseCase creates a new ExpireGoalsUseCase instance.
func NewExpireGoalsUseCase(goalRepo adapter.GoalRepository) *ExpireGoalsUseCase {
	return &ExpireGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute runs one expiry pass. A version conflict on an individual goal
// is skipped, not retried; the next pass will pick the goal up again.
func (uc *ExpireGoalsUseCase) Execute(ctx context.Context, input ExpireGoalsInput) (*ExpireGoalsOutput, error) {
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	goals, err := uc.goalRepo.FindExpirable(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list expirable goals: %w", err)
	}

	output := &ExpireGoalsOutput{}
	for _, g := range goals {
		if g.Status != entity.GoalStatusActive || !g.DeadlinePassed(asOf) || g.ProgressCount >= g.TargetCount {
			continue
		}
		g.Status = entity.GoalStatusExpired
		g.UpdatedAt = asOf

		ok, err := uc.goalRepo.UpdateWithVersion(ctx, g, g.Version)
		if err != nil {
			return nil, fmt.Errorf("failed to expire goal %s: %w", g.ID, err)
		}
		if !ok {
			continue
		}
		output.ExpiredGoalIDs = append(output.ExpiredGoalIDs, g.ID)
	}

	return output, nil
}
