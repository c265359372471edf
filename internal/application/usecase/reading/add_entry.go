// Package reading contains reading-entry use cases: shelving books, moving
// them through the reading pipeline, and keeping the transition log.
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
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// AddEntryInput represents the input for shelving a book.
type AddEntryInput struct {
	UserID uuid.UUID
	BookID uuid.UUID
}

// AddEntryOutput represents the output of shelving a book.
type AddEntryOutput struct {
	Entry *entity.ReadingEntry
}

// AddEntryUseCase puts a book on the user's to_read shelf.
type AddEntryUseCase struct {
	entryRepo adapter.ReadingEntryRepository
	bookRepo  adapter.BookRepository
}

// NewAddEntryUseCase creates a new AddEntryUseCase instance.
func NewAddEntryUseCase(entryRepo adapter.ReadingEntryRepository, bookRepo adapter.BookRepository) *AddEntryUseCase {
	return &AddEntryUseCase{
		entryRepo: entryRepo,
		bookRepo:  bookRepo,
	}
}

// Execute creates the entry and its initial transition record. A user holds
// at most one entry per book.
func (uc *AddEntryUseCase) Execute(ctx context.Context, input AddEntryInput) (*AddEntryOutput, error) {
	if _, err := uc.bookRepo.FindByID(ctx, input.BookID); err != nil {
		if errors.Is(err, domainerror.ErrBookNotFound) {
			return nil, domainerror.NewBookError(
				domainerror.ErrCodeBookNotFound,
				"book not found",
				domainerror.ErrBookNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}

	existing, err := uc.entryRepo.FindByUserAndBook(ctx, input.UserID, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeEntryAlreadyExists,
			"a reading entry already exists for this book",
			domainerror.ErrEntryAlreadyExists,
		)
	}

	entry := entity.NewReadingEntry(input.UserID, input.BookID)
	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create reading entry: %w", err)
	}

	record := valueobject.InitialTransition(entry, time.Now().UTC())
	if err := uc.entryRepo.CreateTransitionRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record initial transition: %w", err)
	}

	return &AddEntryOutput{Entry: entry}, nil
}
