// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database. Version backs the
// optimistic concurrency check on counter updates.
type GoalModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name             string     `gorm:"type:varchar(200);not null"`
	TargetCount      int        `gorm:"not null"`
	ProgressCount    int        `gorm:"not null;default:0"`
	BonusCount       int        `gorm:"not null;default:0"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	StartAt          time.Time  `gorm:"not null"`
	DeadlineAt       time.Time  `gorm:"not null;index"`
	DeadlineTimezone string     `gorm:"type:varchar(64);default:'UTC'"`
	CompletedAt      *time.Time `gorm:"type:timestamp"`
	Version          int        `gorm:"not null;default:1"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		TargetCount:      m.TargetCount,
		ProgressCount:    m.ProgressCount,
		BonusCount:       m.BonusCount,
		Status:           entity.GoalStatus(m.Status),
		StartAt:          m.StartAt,
		DeadlineAt:       m.DeadlineAt,
		DeadlineTimezone: m.DeadlineTimezone,
		CompletedAt:      m.CompletedAt,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:               goal.ID,
		UserID:           goal.UserID,
		Name:             goal.Name,
		TargetCount:      goal.TargetCount,
		ProgressCount:    goal.ProgressCount,
		BonusCount:       goal.BonusCount,
		Status:           string(goal.Status),
		StartAt:          goal.StartAt,
		DeadlineAt:       goal.DeadlineAt,
		DeadlineTimezone: goal.DeadlineTimezone,
		CompletedAt:      goal.CompletedAt,
		Version:          goal.Version,
		CreatedAt:        goal.CreatedAt,
		UpdatedAt:        goal.UpdatedAt,
	}
}

// ProgressAuditModel represents the goal_progress_audit table. The unique
// index is the idempotency guarantee: a goal is credited at most once per
// reading entry.
type ProgressAuditModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoalID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_goal_entry"`
	ReadingEntryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_goal_entry;index"`
	BookID         uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProgressAuditModel.
func (ProgressAuditModel) TableName() string {
	return "goal_progress_audit"
}

// ToEntity converts a ProgressAuditModel to a domain audit entry.
func (m *ProgressAuditModel) ToEntity() *entity.ProgressAuditEntry {
	return &entity.ProgressAuditEntry{
		ID:             m.ID,
		GoalID:         m.GoalID,
		ReadingEntryID: m.ReadingEntryID,
		BookID:         m.BookID,
		CreatedAt:      m.CreatedAt,
	}
}

// ProgressAuditFromEntity creates a ProgressAuditModel from a domain entry.
func ProgressAuditFromEntity(audit *entity.ProgressAuditEntry) *ProgressAuditModel {
	return &ProgressAuditModel{
		ID:             audit.ID,
		GoalID:         audit.GoalID,
		ReadingEntryID: audit.ReadingEntryID,
		BookID:         audit.BookID,
		CreatedAt:      audit.CreatedAt,
	}
}
