// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves all goals for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// FindEligibleGoals retrieves the user's non-expired goals whose
	// deadline has not passed as of the given instant. Completed goals are
	// included so extra finishes accrue as bonus. Eligibility is re-derived
	// per event; nothing is cached.
	FindEligibleGoals(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*entity.Goal, error)

	// FindExpirable retrieves active goals whose deadline passed before
	// the given instant with target unmet. Used by the expiry pass.
	FindExpirable(ctx context.Context, asOf time.Time) ([]*entity.Goal, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// UpdateWithVersion atomically persists the goal only if the stored row
	// still carries expectedVersion, bumping the version on success. It
	// returns false when another writer got there first; the caller is
	// expected to re-read and retry.
	UpdateWithVersion(ctx context.Context, goal *entity.Goal, expectedVersion int) (bool, error)

	// CreditGoal persists the credited goal and its audit row in one
	// transaction, conditional on the goal row still carrying
	// expectedVersion. Returns false on a version conflict; the whole
	// transaction rolls back and the caller re-reads and retries.
	CreditGoal(ctx context.Context, goal *entity.Goal, expectedVersion int, audit *entity.ProgressAuditEntry) (bool, error)

	// RevertGoal persists the reverted goal and deletes the audit row for
	// readingEntryID in one transaction, conditional on expectedVersion.
	// Returns false on a version conflict.
	RevertGoal(ctx context.Context, goal *entity.Goal, expectedVersion int, readingEntryID uuid.UUID) (bool, error)

	// Delete removes a goal from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
