// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// ReadingEntryModel represents the reading_entries table in the database.
// The composite unique index enforces one entry per (user, book) pair.
type ReadingEntryModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_book"`
	BookID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_book"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	Rating         *int       `gorm:"type:smallint"`
	ReflectionNote string     `gorm:"type:text"`
	FinishedAt     *time.Time `gorm:"type:timestamp;index"`
	CurrentPage    int        `gorm:"not null;default:0"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ReadingEntryModel.
func (ReadingEntryModel) TableName() string {
	return "reading_entries"
}

// ToEntity converts a ReadingEntryModel to a domain ReadingEntry entity.
func (m *ReadingEntryModel) ToEntity() *entity.ReadingEntry {
	return &entity.ReadingEntry{
		ID:             m.ID,
		UserID:         m.UserID,
		BookID:         m.BookID,
		Status:         entity.ReadingStatus(m.Status),
		Rating:         m.Rating,
		ReflectionNote: m.ReflectionNote,
		FinishedAt:     m.FinishedAt,
		CurrentPage:    m.CurrentPage,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ReadingEntryFromEntity creates a ReadingEntryModel from a domain entity.
func ReadingEntryFromEntity(entry *entity.ReadingEntry) *ReadingEntryModel {
	return &ReadingEntryModel{
		ID:             entry.ID,
		UserID:         entry.UserID,
		BookID:         entry.BookID,
		Status:         string(entry.Status),
		Rating:         entry.Rating,
		ReflectionNote: entry.ReflectionNote,
		FinishedAt:     entry.FinishedAt,
		CurrentPage:    entry.CurrentPage,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
}

// StatusTransitionModel represents the status_transitions table. Rows are
// append-only.
type StatusTransitionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReadingEntryID uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus     *string   `gorm:"type:varchar(20)"`
	ToStatus       string    `gorm:"type:varchar(20);not null"`
	TransitionedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the StatusTransitionModel.
func (StatusTransitionModel) TableName() string {
	return "status_transitions"
}

// ToEntity converts a StatusTransitionModel to a domain record.
func (m *StatusTransitionModel) ToEntity() *entity.StatusTransitionRecord {
	var from *entity.ReadingStatus
	if m.FromStatus != nil {
		status := entity.ReadingStatus(*m.FromStatus)
		from = &status
	}
	return &entity.StatusTransitionRecord{
		ID:             m.ID,
		ReadingEntryID: m.ReadingEntryID,
		FromStatus:     from,
		ToStatus:       entity.ReadingStatus(m.ToStatus),
		TransitionedAt: m.TransitionedAt,
	}
}

// StatusTransitionFromEntity creates a StatusTransitionModel from a record.
func StatusTransitionFromEntity(record *entity.StatusTransitionRecord) *StatusTransitionModel {
	var from *string
	if record.FromStatus != nil {
		status := string(*record.FromStatus)
		from = &status
	}
	return &StatusTransitionModel{
		ID:             record.ID,
		ReadingEntryID: record.ReadingEntryID,
		FromStatus:     from,
		ToStatus:       string(record.ToStatus),
		TransitionedAt: record.TransitionedAt,
	}
}
