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

// errVersionConflict aborts a transaction when the conditional version
// check matched no row. It never escapes the repository.
var errVersionConflict = errors.New("goal version conflict")

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	return result.Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves all goals for a given user.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deadline_at ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toGoalEntities(goalModels), nil
}

// FindEligibleGoals retrieves the user's non-expired goals whose deadline
// has not passed as of the given instant. Completed goals are included so
// that finishes inside the window keep accruing as bonus.
func (r *goalRepository) FindEligibleGoals(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ? AND deadline_at >= ?", userID, string(entity.GoalStatusExpired), asOf).
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toGoalEntities(goalModels), nil
}

// FindExpirable retrieves active goals whose deadline passed before the
// given instant with target unmet.
func (r *goalRepository) FindExpirable(ctx context.Context, asOf time.Time) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("status = ? AND deadline_at < ? AND progress_count < target_count", string(entity.GoalStatusActive), asOf).
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toGoalEntities(goalModels), nil
}

// Update updates an existing goal in the database without a version check.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	return result.Error
}

// UpdateWithVersion atomically persists the goal only if the stored row
// still carries expectedVersion.
func (r *goalRepository) UpdateWithVersion(ctx context.Context, goal *entity.Goal, expectedVersion int) (bool, error) {
	result := r.conditionalUpdate(r.db.WithContext(ctx), goal, expectedVersion)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	goal.Version = expectedVersion + 1
	return true, nil
}

// CreditGoal persists the credited goal and its audit row in one
// transaction, conditional on the version check.
func (r *goalRepository) CreditGoal(ctx context.Context, goal *entity.Goal, expectedVersion int, audit *entity.ProgressAuditEntry) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := r.conditionalUpdate(tx, goal, expectedVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errVersionConflict
		}
		return tx.Create(model.ProgressAuditFromEntity(audit)).Error
	})
	if errors.Is(err, errVersionConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	goal.Version = expectedVersion + 1
	return true, nil
}

// RevertGoal persists the reverted goal and deletes the audit row for
// readingEntryID in one transaction, conditional on the version check.
func (r *goalRepository) RevertGoal(ctx context.Context, goal *entity.Goal, expectedVersion int, readingEntryID uuid.UUID) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := r.conditionalUpdate(tx, goal, expectedVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errVersionConflict
		}
		return tx.
			Where("goal_id = ? AND reading_entry_id = ?", goal.ID, readingEntryID).
			Delete(&model.ProgressAuditModel{}).Error
	})
	if errors.Is(err, errVersionConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	goal.Version = expectedVersion + 1
	return true, nil
}

// Delete removes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	return result.Error
}

// conditionalUpdate writes the full goal row guarded by the version
// column. RowsAffected reports whether the guard matched.
func (r *goalRepository) conditionalUpdate(tx *gorm.DB, goal *entity.Goal, expectedVersion int) *gorm.DB {
	goalModel := model.GoalFromEntity(goal)
	goalModel.Version = expectedVersion + 1
	return tx.
		Model(&model.GoalModel{}).
		Where("id = ? AND version = ?", goal.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(goalModel)
}

func toGoalEntities(goalModels []model.GoalModel) []*entity.Goal {
	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals
}
