// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// ProgressAuditRepository defines the interface for progress audit
// persistence. One row exists per credited (goal, reading entry) pair.
type ProgressAuditRepository interface {
	// Create persists an audit row for a credited completion.
	Create(ctx context.Context, entry *entity.ProgressAuditEntry) error

	// FindByGoal retrieves the audit rows recorded for a goal.
	FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.ProgressAuditEntry, error)

	// FindByReadingEntry retrieves the audit rows recorded for a reading
	// entry across all goals. Drives exact reversal on uncompletion.
	FindByReadingEntry(ctx context.Context, readingEntryID uuid.UUID) ([]*entity.ProgressAuditEntry, error)

	// ExistsByGoalAndEntry reports whether a goal was already credited for
	// an entry. Idempotency check for retried completion events.
	ExistsByGoalAndEntry(ctx context.Context, goalID, readingEntryID uuid.UUID) (bool, error)

	// DeleteByGoalAndEntry removes the audit row for a (goal, entry) pair,
	// reporting whether a row existed.
	DeleteByGoalAndEntry(ctx context.Context, goalID, readingEntryID uuid.UUID) (bool, error)

	// DeleteByGoal removes all audit rows for a goal. Used when a goal is
	// deleted.
	DeleteByGoal(ctx context.Context, goalID uuid.UUID) error
}
