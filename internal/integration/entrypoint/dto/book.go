// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
)

// CreateBookRequest represents the request body for adding a book.
type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=500"`
	Authors     []string `json:"authors"`
	PageCount   int      `json:"page_count" binding:"gte=0"`
	ISBN        string   `json:"isbn"`
	CoverURL    string   `json:"cover_url"`
	Description string   `json:"description"`
}

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	PageCount   int       `json:"page_count"`
	ISBN        string    `json:"isbn,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookListResponse represents a page of books.
type BookListResponse struct {
	Books []BookResponse `json:"books"`
}

// BookSearchResponse represents external search results.
type BookSearchResponse struct {
	Results []BookSearchResultResponse `json:"results"`
}

// BookSearchResultResponse represents one external search hit.
type BookSearchResultResponse struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	PageCount int      `json:"page_count"`
	ISBN      string   `json:"isbn,omitempty"`
	CoverURL  string   `json:"cover_url,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
}

// ToBookResponse converts a domain Book entity to a BookResponse DTO.
func ToBookResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ID:          book.ID.String(),
		Title:       book.Title,
		Authors:     book.Authors,
		PageCount:   book.PageCount,
		ISBN:        book.ISBN,
		CoverURL:    book.CoverURL,
		Description: book.Description,
		CreatedAt:   book.CreatedAt,
	}
}

// ToBookListResponse converts domain books to a BookListResponse DTO.
func ToBookListResponse(books []*entity.Book) BookListResponse {
	response := BookListResponse{Books: make([]BookResponse, 0, len(books))}
	for _, book := range books {
		response.Books = append(response.Books, ToBookResponse(book))
	}
	return response
}

// ToBookSearchResponse converts search results to a BookSearchResponse DTO.
func ToBookSearchResponse(results []adapter.BookSearchResult) BookSearchResponse {
	response := BookSearchResponse{Results: make([]BookSearchResultResponse, 0, len(results))}
	for _, result := range results {
		response.Results = append(response.Results, BookSearchResultResponse{
			Title:     result.Title,
			Authors:   result.Authors,
			PageCount: result.PageCount,
			ISBN:      result.ISBN,
			CoverURL:  result.CoverURL,
			Publisher: result.Publisher,
		})
	}
	return response
}
