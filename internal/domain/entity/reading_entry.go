// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReadingStatus represents the position of a reading entry in the
// to_read -> reading -> finished pipeline.
type ReadingStatus string

const (
	StatusToRead   ReadingStatus = "to_read"
	StatusReading  ReadingStatus = "reading"
	StatusFinished ReadingStatus = "finished"
)

// ReadingEntry represents one user's relationship with one book. At most one
// entry exists per (user, book) pair.
type ReadingEntry struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BookID         uuid.UUID
	Status         ReadingStatus
	Rating         *int // 1-5, only set while the entry is finished
	ReflectionNote string
	FinishedAt     *time.Time
	CurrentPage    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewReadingEntry creates a new ReadingEntry on the to_read shelf.
func NewReadingEntry(userID, bookID uuid.UUID) *ReadingEntry {
	now := time.Now().UTC()
	return &ReadingEntry{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Status:    StatusToRead,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StatusTransitionRecord is an append-only log entry for a reading entry's
// status change. FromStatus is nil only for the very first transition of a
// new entry. Records are never mutated or deleted.
type StatusTransitionRecord struct {
	ID             uuid.UUID
	ReadingEntryID uuid.UUID
	FromStatus     *ReadingStatus
	ToStatus       ReadingStatus
	TransitionedAt time.Time
}

// NewStatusTransitionRecord creates a transition record with the literal
// from/to values.
func NewStatusTransitionRecord(entryID uuid.UUID, from *ReadingStatus, to ReadingStatus, at time.Time) *StatusTransitionRecord {
	return &StatusTransitionRecord{
		ID:             uuid.New(),
		ReadingEntryID: entryID,
		FromStatus:     from,
		ToStatus:       to,
		TransitionedAt: at,
	}
}
