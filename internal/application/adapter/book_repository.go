// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// BookRepository defines the interface for book persistence operations.
type BookRepository interface {
	// Create creates a new book in the database.
	Create(ctx context.Context, book *entity.Book) error

	// FindByID retrieves a book by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// FindByISBN retrieves a book by ISBN, or nil when none matches.
	FindByISBN(ctx context.Context, isbn string) (*entity.Book, error)

	// List retrieves books ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*entity.Book, error)
}

// BookSearchResult represents one hit from the external book search.
type BookSearchResult struct {
	Title     string
	Authors   []string
	PageCount int
	ISBN      string
	CoverURL  string
	Publisher string
}

// BookSearchService defines the interface for external book search.
type BookSearchService interface {
	// Search queries the external catalog and returns up to limit results.
	Search(ctx context.Context, query string, limit int) ([]BookSearchResult, error)
}
