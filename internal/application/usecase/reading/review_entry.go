// Package reading contains reading-entry use cases.
package reading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// ReviewEntryInput represents the input for rating and reflecting on a book.
type ReviewEntryInput struct {
	EntryID        uuid.UUID
	UserID         uuid.UUID
	Rating         *int // optional
	ReflectionNote *string
}

// ReviewEntryOutput represents the output of a review update.
type ReviewEntryOutput struct {
	Entry *entity.ReadingEntry
}

// ReviewEntryUseCase sets the rating and reflection note on a finished
// entry. Ratings only exist on finished books.
type ReviewEntryUseCase struct {
	entryRepo adapter.ReadingEntryRepository
}

// NewReviewEntryUseCase creates a new ReviewEntryUseCase instance.
func NewReviewEntryUseCase(entryRepo adapter.ReadingEntryRepository) *ReviewEntryUseCase {
	return &ReviewEntryUseCase{
		entryRepo: entryRepo,
	}
}

// Execute performs the review update.
func (uc *ReviewEntryUseCase) Execute(ctx context.Context, input ReviewEntryInput) (*ReviewEntryOutput, error) {
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

	if input.Rating != nil {
		if entry.Status != entity.StatusFinished {
			return nil, domainerror.NewReadingError(
				domainerror.ErrCodeInvalidRating,
				"only finished books can be rated",
				domainerror.ErrInvalidRating,
			)
		}
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, domainerror.NewReadingError(
				domainerror.ErrCodeInvalidRating,
				"rating must be between 1 and 5",
				domainerror.ErrInvalidRating,
			)
		}
		entry.Rating = input.Rating
	}

	if input.ReflectionNote != nil {
		entry.ReflectionNote = *input.ReflectionNote
	}

	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update reading entry: %w", err)
	}

	return &ReviewEntryOutput{Entry: entry}, nil
}
