// Package reading contains reading-entry use cases.
package reading

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/application/usecase/progress"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// RemoveEntryInput represents the input for deleting a reading entry.
type RemoveEntryInput struct {
	EntryID uuid.UUID
	UserID  uuid.UUID
}

// RemoveEntryOutput reports any goal reversals that failed while the entry
// itself was removed.
type RemoveEntryOutput struct {
	GoalFailures []progress.GoalUpdateFailure
}

// RemoveEntryUseCase deletes a reading entry. Deleting a finished entry is
// an uncompletion as far as goal accounting is concerned, so credits are
// reversed before the row disappears.
type RemoveEntryUseCase struct {
	entryRepo adapter.ReadingEntryRepository
	reverse   *progress.ReverseCompletionUseCase
}

// NewRemoveEntryUseCase creates a new RemoveEntryUseCase instance.
func NewRemoveEntryUseCase(entryRepo adapter.ReadingEntryRepository, reverse *progress.ReverseCompletionUseCase) *RemoveEntryUseCase {
	return &RemoveEntryUseCase{
		entryRepo: entryRepo,
		reverse:   reverse,
	}
}

// Execute performs the deletion.
func (uc *RemoveEntryUseCase) Execute(ctx context.Context, input RemoveEntryInput) (*RemoveEntryOutput, error) {
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
			"not authorized to delete this entry",
			domainerror.ErrUnauthorizedEntryAccess,
		)
	}

	output := &RemoveEntryOutput{}

	if entry.Status == entity.StatusFinished {
		reverted, err := uc.reverse.Execute(ctx, valueobject.UncompletionEvent{ReadingEntryID: entry.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to reverse goal credits: %w", err)
		}
		output.GoalFailures = reverted.Failures
	}

	if err := uc.entryRepo.Delete(ctx, entry.ID); err != nil {
		return nil, fmt.Errorf("failed to delete reading entry: %w", err)
	}

	return output, nil
}
