// Package valueobject contains domain value objects for the Reading Tracker system.
package valueobject

import (
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// CompletionEvent signals that a reading entry entered the finished status.
// It is consumed by the goal progress engine.
type CompletionEvent struct {
	ReadingEntryID uuid.UUID
	BookID         uuid.UUID
	UserID         uuid.UUID
	FinishedAt     time.Time
}

// UncompletionEvent signals that a reading entry left the finished status.
type UncompletionEvent struct {
	ReadingEntryID uuid.UUID
}

// TransitionResult describes the outcome of a successful status transition:
// the mutated entry fields, the transition record to append, and at most one
// of Completion/Uncompletion.
type TransitionResult struct {
	Record       *entity.StatusTransitionRecord
	Completion   *CompletionEvent
	Uncompletion *UncompletionEvent
}

// allowedTransitions is the fixed directed graph of valid status changes.
// Self-loops are excluded; to_read and finished are never adjacent.
var allowedTransitions = map[entity.ReadingStatus][]entity.ReadingStatus{
	entity.StatusToRead:   {entity.StatusReading},
	entity.StatusReading:  {entity.StatusToRead, entity.StatusFinished},
	entity.StatusFinished: {entity.StatusReading},
}

// CanTransition reports whether the status graph permits moving from the
// current status to the target status.
func CanTransition(current, target entity.ReadingStatus) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known reading statuses.
func ValidStatus(s entity.ReadingStatus) bool {
	switch s {
	case entity.StatusToRead, entity.StatusReading, entity.StatusFinished:
		return true
	}
	return false
}

// Transition mutates the entry for a validated status change and returns the
// resulting side effects. pageCount is the book's total page count (0 when
// unknown) and now is the instant of the transition. The caller must have
// checked CanTransition first; Transition assumes the move is legal.
//
// Entering finished sets FinishedAt only if it is not already set, so a
// re-finish after a brief un-finish keeps the original completion instant.
func Transition(entry *entity.ReadingEntry, target entity.ReadingStatus, pageCount int, now time.Time) TransitionResult {
	from := entry.Status
	result := TransitionResult{
		Record: entity.NewStatusTransitionRecord(entry.ID, &from, target, now),
	}

	switch {
	case target == entity.StatusFinished:
		if entry.FinishedAt == nil {
			finishedAt := now
			entry.FinishedAt = &finishedAt
		}
		if pageCount > 0 {
			entry.CurrentPage = pageCount
		}
		result.Completion = &CompletionEvent{
			ReadingEntryID: entry.ID,
			BookID:         entry.BookID,
			UserID:         entry.UserID,
			FinishedAt:     *entry.FinishedAt,
		}

	case from == entity.StatusFinished:
		entry.FinishedAt = nil
		entry.Rating = nil
		result.Uncompletion = &UncompletionEvent{ReadingEntryID: entry.ID}
	}

	if target == entity.StatusToRead {
		entry.CurrentPage = 0
	}

	entry.Status = target
	entry.UpdatedAt = now

	return result
}

// InitialTransition produces the transition record for a freshly created
// entry. FromStatus is nil: there was no prior status.
func InitialTransition(entry *entity.ReadingEntry, now time.Time) *entity.StatusTransitionRecord {
	return entity.NewStatusTransitionRecord(entry.ID, nil, entry.Status, now)
}
