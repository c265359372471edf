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

// UpdatePageInput represents the input for a reading-position update.
type UpdatePageInput struct {
	EntryID     uuid.UUID
	UserID      uuid.UUID
	CurrentPage int
}

// UpdatePageOutput represents the output of a reading-position update.
type UpdatePageOutput struct {
	Entry *entity.ReadingEntry
}

// UpdatePageUseCase updates how far the user has read.
type UpdatePageUseCase struct {
	entryRepo adapter.ReadingEntryRepository
	bookRepo  adapter.BookRepository
}

// NewUpdatePageUseCase creates a new UpdatePageUseCase instance.
func NewUpdatePageUseCase(entryRepo adapter.ReadingEntryRepository, bookRepo adapter.BookRepository) *UpdatePageUseCase {
	return &UpdatePageUseCase{
		entryRepo: entryRepo,
		bookRepo:  bookRepo,
	}
}

// Execute performs the page update.
func (uc *UpdatePageUseCase) Execute(ctx context.Context, input UpdatePageInput) (*UpdatePageOutput, error) {
	if input.CurrentPage < 0 {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeInvalidPage,
			"current page must not be negative",
			domainerror.ErrInvalidPage,
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

	if book, err := uc.bookRepo.FindByID(ctx, entry.BookID); err == nil {
		if book.PageCount > 0 && input.CurrentPage > book.PageCount {
			return nil, domainerror.NewReadingError(
				domainerror.ErrCodeInvalidPage,
				fmt.Sprintf("current page exceeds the book's %d pages", book.PageCount),
				domainerror.ErrInvalidPage,
			)
		}
	}

	entry.CurrentPage = input.CurrentPage
	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update reading entry: %w", err)
	}

	return &UpdatePageOutput{Entry: entry}, nil
}
