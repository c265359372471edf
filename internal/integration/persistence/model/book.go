// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// BookModel represents the books table in the database.
type BookModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"type:varchar(500);not null"`
	Authors     pq.StringArray `gorm:"type:text[]"`
	PageCount   int            `gorm:"not null;default:0"`
	ISBN        string         `gorm:"type:varchar(20);index"`
	CoverURL    string         `gorm:"type:varchar(1000)"`
	Description string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TableName returns the table name for the BookModel.
func (BookModel) TableName() string {
	return "books"
}

// ToEntity converts a BookModel to a domain Book entity.
func (m *BookModel) ToEntity() *entity.Book {
	return &entity.Book{
		ID:          m.ID,
		Title:       m.Title,
		Authors:     []string(m.Authors),
		PageCount:   m.PageCount,
		ISBN:        m.ISBN,
		CoverURL:    m.CoverURL,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// BookFromEntity creates a BookModel from a domain Book entity.
func BookFromEntity(book *entity.Book) *BookModel {
	return &BookModel{
		ID:          book.ID,
		Title:       book.Title,
		Authors:     pq.StringArray(book.Authors),
		PageCount:   book.PageCount,
		ISBN:        book.ISBN,
		CoverURL:    book.CoverURL,
		Description: book.Description,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}
