// Package reading contains reading-entry use cases.
package reading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/application/usecase/progress"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// ChangeStatusInput represents the input for a status change.
type ChangeStatusInput struct {
	EntryID      uuid.UUID
	UserID       uuid.UUID
	TargetStatus entity.ReadingStatus
}

// ChangeStatusOutput represents the output of a status change. GoalFailures
// lists goals whose counters could not be updated for the emitted event;
// the status change itself and other goals' updates stand regardless.
type ChangeStatusOutput struct {
	Entry        *entity.ReadingEntry
	GoalFailures []progress.GoalUpdateFailure
}

// ChangeStatusUseCase validates and applies a reading-status change, then
// feeds the resulting completion or uncompletion signal to the goal
// progress engine. The status machine itself knows nothing about goals;
// the coupling is this explicit event hand-off.
type ChangeStatusUseCase struct {
	entryRepo adapter.ReadingEntryRepository
	bookRepo  adapter.BookRepository
	record    *progress.RecordCompletionUseCase
	reverse   *progress.ReverseCompletionUseCase
}

// NewChangeStatusUseCase creates a new ChangeStatusUseCase instance.
func NewChangeStatusUseCase(
	entryRepo adapter.ReadingEntryRepository,
	bookRepo adapter.BookRepository,
	record *progress.RecordCompletionUseCase,
	reverse *progress.ReverseCompletionUseCase,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		entryRepo: entryRepo,
		bookRepo:  bookRepo,
		record:    record,
		reverse:   reverse,
	}
}

// Execute performs the status change. Invalid transitions are rejected
// before any mutation; no partial side effects escape a rejected change.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	if !valueobject.ValidStatus(input.TargetStatus) {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeInvalidStatus,
			"status must be 'to_read', 'reading', or 'finished'",
			domainerror.ErrInvalidStatus,
		)
	}

	entry, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReadingEntryNotFound) {
			return nil, domainerror.NewReadingError(
				domainerror.ErrCodeEntryNotFound,
				"reading entry not found",
				domainerror.ErrReadingEntryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find reading entry: %w", err)
	}

	if entry.UserID != input.UserID {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeUnauthorizedEntry,
			"not authorized to modify this entry",
			domainerror.ErrUnauthorizedEntryAccess,
		)
	}

	if !valueobject.CanTransition(entry.Status, input.TargetStatus) {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeInvalidTransition,
			fmt.Sprintf("cannot transition from %s to %s", entry.Status, input.TargetStatus),
			domainerror.ErrInvalidTransition,
		)
	}

	pageCount := 0
	if book, err := uc.bookRepo.FindByID(ctx, entry.BookID); err == nil {
		pageCount = book.PageCount
	}

	result := valueobject.Transition(entry, input.TargetStatus, pageCount, time.Now().UTC())

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update reading entry: %w", err)
	}
	if err := uc.entryRepo.CreateTransitionRecord(ctx, result.Record); err != nil {
		return nil, fmt.Errorf("failed to record transition: %w", err)
	}

	output := &ChangeStatusOutput{Entry: entry}

	switch {
	case result.Completion != nil:
		credited, err := uc.record.Execute(ctx, *result.Completion)
		if err != nil {
			return nil, fmt.Errorf("failed to credit goals: %w", err)
		}
		output.GoalFailures = credited.Failures
	case result.Uncompletion != nil:
		reverted, err := uc.reverse.Execute(ctx, *result.Uncompletion)
		if err != nil {
			return nil, fmt.Errorf("failed to reverse goal credits: %w", err)
		}
		output.GoalFailures = reverted.Failures
	}

	return output, nil
}
