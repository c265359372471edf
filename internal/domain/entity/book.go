// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a book known to the Reading Tracker system. Books are
// shared across users; per-user state lives on ReadingEntry.
type Book struct {
	ID          uuid.UUID
	Title       string
	Authors     []string
	PageCount   int
	ISBN        string
	CoverURL    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook creates a new Book entity.
func NewBook(title string, authors []string, pageCount int, isbn string) *Book {
	now := time.Now().UTC()
	return &Book{
		ID:        uuid.New(),
		Title:     title,
		Authors:   authors,
		PageCount: pageCount,
		ISBN:      isbn,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
