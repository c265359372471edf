// Package book contains book catalog use cases.
package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// GetBookInput represents the input for fetching a book.
type GetBookInput struct {
	BookID uuid.UUID
}

// GetBookOutput represents the output of fetching a book.
type GetBookOutput struct {
	Book *entity.Book
}

// GetBookUseCase retrieves a single book from the catalog.
type GetBookUseCase struct {
	bookRepo adapter.BookRepository
}

// NewGetBookUseCase creates a new GetBookUseCase instance.
func NewGetBookUseCase(bookRepo adapter.BookRepository) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo: bookRepo,
	}
}

// Execute fetches the book.
func (uc *GetBookUseCase) Execute(ctx context.Context, input GetBookInput) (*GetBookOutput, error) {
	book, err := uc.bookRepo.FindByID(ctx, input.BookID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBookNotFound) {
			return nil, domainerror.NewBookError(
				domainerror.ErrCodeBookNotFound,
				"book not found",
				domainerror.ErrBookNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}

	return &GetBookOutput{Book: book}, nil
}
