// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	"github.com/reading-tracker/backend/internal/integration/persistence/model"
)

// progressAuditRepository implements the adapter.ProgressAuditRepository interface.
type progressAuditRepository struct {
	db *gorm.DB
}

// NewProgressAuditRepository creates a new progress audit repository instance.
func NewProgressAuditRepository(db *gorm.DB) adapter.ProgressAuditRepository {
	return &progressAuditRepository{
		db: db,
	}
}

// Create persists an audit row for a credited completion.
func (r *progressAuditRepository) Create(ctx context.Context, entry *entity.ProgressAuditEntry) error {
	auditModel := model.ProgressAuditFromEntity(entry)
	result := r.db.WithContext(ctx).Create(auditModel)
	return result.Error
}

// FindByGoal retrieves the audit rows recorded for a goal.
func (r *progressAuditRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.ProgressAuditEntry, error) {
	var auditModels []model.ProgressAuditModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at ASC").
		Find(&auditModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAuditEntities(auditModels), nil
}

// FindByReadingEntry retrieves the audit rows recorded for a reading entry
// across all goals.
func (r *progressAuditRepository) FindByReadingEntry(ctx context.Context, readingEntryID uuid.UUID) ([]*entity.ProgressAuditEntry, error) {
	var auditModels []model.ProgressAuditModel
	result := r.db.WithContext(ctx).
		Where("reading_entry_id = ?", readingEntryID).
		Find(&auditModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAuditEntities(auditModels), nil
}

// ExistsByGoalAndEntry reports whether a goal was already credited for an entry.
func (r *progressAuditRepository) ExistsByGoalAndEntry(ctx context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ProgressAuditModel{}).
		Where("goal_id = ? AND reading_entry_id = ?", goalID, readingEntryID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// DeleteByGoalAndEntry removes the audit row for a (goal, entry) pair.
func (r *progressAuditRepository) DeleteByGoalAndEntry(ctx context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("goal_id = ? AND reading_entry_id = ?", goalID, readingEntryID).
		Delete(&model.ProgressAuditModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByGoal removes all audit rows for a goal.
func (r *progressAuditRepository) DeleteByGoal(ctx context.Context, goalID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Delete(&model.ProgressAuditModel{})
	return result.Error
}

func toAuditEntities(auditModels []model.ProgressAuditModel) []*entity.ProgressAuditEntry {
	entries := make([]*entity.ProgressAuditEntry, len(auditModels))
	for i, am := range auditModels {
		entries[i] = am.ToEntity()
	}
	return entries
}
