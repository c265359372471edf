// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// ReadingEntryRepository defines the interface for reading entry persistence
// operations, including the append-only status transition log.
type ReadingEntryRepository interface {
	// Create creates a new reading entry in the database.
	Create(ctx context.Context, entry *entity.ReadingEntry) error

	// FindByID retrieves a reading entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReadingEntry, error)

	// FindByUserAndBook retrieves the user's entry for a book, or nil when
	// none exists.
	FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.ReadingEntry, error)

	// FindByUser retrieves all entries for a user, optionally filtered by
	// status (nil means all statuses).
	FindByUser(ctx context.Context, userID uuid.UUID, status *entity.ReadingStatus) ([]*entity.ReadingEntry, error)

	// FindFinishedInWindow retrieves the user's entries with status finished
	// and FinishedAt within [from, to] inclusive. Source of truth for goal
	// reconciliation.
	FindFinishedInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.ReadingEntry, error)

	// Update updates an existing reading entry in the database.
	Update(ctx context.Context, entry *entity.ReadingEntry) error

	// Delete removes a reading entry from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateTransitionRecord appends a status transition record.
	CreateTransitionRecord(ctx context.Context, record *entity.StatusTransitionRecord) error

	// FindTransitionsByEntry retrieves the transition log for an entry,
	// oldest first.
	FindTransitionsByEntry(ctx context.Context, entryID uuid.UUID) ([]*entity.StatusTransitionRecord, error)
}
