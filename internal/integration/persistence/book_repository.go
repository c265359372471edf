// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/integration/persistence/model"
)

// bookRepository implements the adapter.BookRepository interface.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository instance.
func NewBookRepository(db *gorm.DB) adapter.BookRepository {
	return &bookRepository{
		db: db,
	}
}

// Create creates a new book in the database.
func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookModel := model.BookFromEntity(book)
	result := r.db.WithContext(ctx).Create(bookModel)
	return result.Error
}

// FindByID retrieves a book by its ID.
func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var bookModel model.BookModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&bookModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBookNotFound
		}
		return nil, result.Error
	}
	return bookModel.ToEntity(), nil
}

// FindByISBN retrieves a book by ISBN, or nil when none matches.
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	var bookModel model.BookModel
	result := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&bookModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return bookModel.ToEntity(), nil
}

// List retrieves books ordered by creation time, newest first.
func (r *bookRepository) List(ctx context.Context, limit, offset int) ([]*entity.Book, error) {
	var bookModels []model.BookModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookModels)
	if result.Error != nil {
		return nil, result.Error
	}

	books := make([]*entity.Book, len(bookModels))
	for i, bm := range bookModels {
		books[i] = bm.ToEntity()
	}
	return books, nil
}
