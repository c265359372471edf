// Package book contains book catalog use cases.
package book

import (
	"context"
	"fmt"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListBooksInput represents the input for listing the catalog.
type ListBooksInput struct {
	Limit  int
	Offset int
}

// ListBooksOutput represents the output of listing the catalog.
type ListBooksOutput struct {
	Books []*entity.Book
}

// ListBooksUseCase pages through the shared catalog.
type ListBooksUseCase struct {
	bookRepo adapter.BookRepository
}

// NewListBooksUseCase creates a new ListBooksUseCase instance.
func NewListBooksUseCase(bookRepo adapter.BookRepository) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo: bookRepo,
	}
}

// Execute lists the books, newest first.
func (uc *ListBooksUseCase) Execute(ctx context.Context, input ListBooksInput) (*ListBooksOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	books, err := uc.bookRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return &ListBooksOutput{Books: books}, nil
}
