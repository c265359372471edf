// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProgressAuditEntry records that one book completion was credited to one
// goal. One row exists per credited (goal, reading entry) pair; the row is
// deleted when that credit is reversed. It is what makes reversal exact:
// without it an uncompletion could not know which goals were credited.
type ProgressAuditEntry struct {
	ID             uuid.UUID
	GoalID         uuid.UUID
	ReadingEntryID uuid.UUID
	BookID         uuid.UUID
	CreatedAt      time.Time
}

// NewProgressAuditEntry creates an audit row for a credited completion.
func NewProgressAuditEntry(goalID, readingEntryID, bookID uuid.UUID) *ProgressAuditEntry {
	return &ProgressAuditEntry{
		ID:             uuid.New(),
		GoalID:         goalID,
		ReadingEntryID: readingEntryID,
		BookID:         bookID,
		CreatedAt:      time.Now().UTC(),
	}
}
