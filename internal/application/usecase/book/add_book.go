// Package book contains book catalog use cases. The catalog is shared
// across users; per-user reading state lives on reading entries.
package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// AddBookInput represents the input for adding a book to the catalog.
type AddBookInput struct {
	Title       string
	Authors     []string
	PageCount   int
	ISBN        string
	CoverURL    string
	Description string
}

// AddBookOutput represents the output of adding a book.
type AddBookOutput struct {
	Book *entity.Book
}

// AddBookUseCase adds a book to the shared catalog.
type AddBookUseCase struct {
	bookRepo adapter.BookRepository
}

// NewAddBookUseCase creates a new AddBookUseCase instance.
func NewAddBookUseCase(bookRepo adapter.BookRepository) *AddBookUseCase {
	return &AddBookUseCase{
		bookRepo: bookRepo,
	}
}

// Execute validates and persists the book. Books with a known ISBN are
// deduplicated; re-adding returns the existing record.
func (uc *AddBookUseCase) Execute(ctx context.Context, input AddBookInput) (*AddBookOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.NewBookError(
			domainerror.ErrCodeMissingBookTitle,
			"book title is required",
			domainerror.ErrMissingBookTitle,
		)
	}
	if input.PageCount < 0 {
		return nil, domainerror.NewBookError(
			domainerror.ErrCodeInvalidPageCount,
			"page count must not be negative",
			domainerror.ErrInvalidPageCount,
		)
	}

	if input.ISBN != "" {
		existing, err := uc.bookRepo.FindByISBN(ctx, input.ISBN)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing book: %w", err)
		}
		if existing != nil {
			return &AddBookOutput{Book: existing}, nil
		}
	}

	book := entity.NewBook(title, input.Authors, input.PageCount, input.ISBN)
	book.CoverURL = input.CoverURL
	book.Description = input.Description

	if err := uc.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &AddBookOutput{Book: book}, nil
}
