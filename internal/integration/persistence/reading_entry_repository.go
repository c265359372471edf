// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/integration/persistence/model"
)

// readingEntryRepository implements the adapter.ReadingEntryRepository interface.
type readingEntryRepository struct {
	db *gorm.DB
}

// NewReadingEntryRepository creates a new reading entry repository instance.
func NewReadingEntryRepository(db *gorm.DB) adapter.ReadingEntryRepository {
	return &readingEntryRepository{
		db: db,
	}
}

// Create creates a new reading entry in the database.
func (r *readingEntryRepository) Create(ctx context.Context, entry *entity.ReadingEntry) error {
	entryModel := model.ReadingEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Create(entryModel)
	return result.Error
}

// FindByID retrieves a reading entry by its ID.
func (r *readingEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReadingEntry, error) {
	var entryModel model.ReadingEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReadingEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByUserAndBook retrieves the user's entry for a book, or nil when none exists.
func (r *readingEntryRepository) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.ReadingEntry, error) {
	var entryModel model.ReadingEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByUser retrieves all entries for a user, optionally filtered by status.
func (r *readingEntryRepository) FindByUser(ctx context.Context, userID uuid.UUID, status *entity.ReadingStatus) ([]*entity.ReadingEntry, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var entryModels []model.ReadingEntryModel
	result := query.Order("updated_at DESC").Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.ReadingEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries, nil
}

// FindFinishedInWindow retrieves finished entries with FinishedAt within
// [from, to] inclusive.
func (r *readingEntryRepository) FindFinishedInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.ReadingEntry, error) {
	var entryModels []model.ReadingEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.StatusFinished)).
		Where("finished_at >= ? AND finished_at <= ?", from, to).
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.ReadingEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries, nil
}

// Update updates an existing reading entry in the database.
func (r *readingEntryRepository) Update(ctx context.Context, entry *entity.ReadingEntry) error {
	entryModel := model.ReadingEntryFromEntity(entry)
	// Save alone skips fields going back to NULL; clear them explicitly so
	// unfinishing really drops FinishedAt and Rating.
	result := r.db.WithContext(ctx).
		Model(&model.ReadingEntryModel{}).
		Where("id = ?", entry.ID).
		Select("*").
		Updates(entryModel)
	return result.Error
}

// Delete removes a reading entry from the database.
func (r *readingEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ReadingEntryModel{}, "id = ?", id)
	return result.Error
}

// CreateTransitionRecord appends a status transition record.
func (r *readingEntryRepository) CreateTransitionRecord(ctx context.Context, record *entity.StatusTransitionRecord) error {
	recordModel := model.StatusTransitionFromEntity(record)
	result := r.db.WithContext(ctx).Create(recordModel)
	return result.Error
}

// FindTransitionsByEntry retrieves the transition log for an entry, oldest first.
func (r *readingEntryRepository) FindTransitionsByEntry(ctx context.Context, entryID uuid.UUID) ([]*entity.StatusTransitionRecord, error) {
	var recordModels []model.StatusTransitionModel
	result := r.db.WithContext(ctx).
		Where("reading_entry_id = ?", entryID).
		Order("transitioned_at ASC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.StatusTransitionRecord, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}
	return records, nil
}
