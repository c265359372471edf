// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle state of a reading goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusExpired   GoalStatus = "expired"
)

// Goal target bounds.
const (
	MinTargetCount = 1
	MaxTargetCount = 9999
)

// Goal represents a time-boxed reading goal ("read N books by D"). Progress
// and bonus counters are mutated only by the progress engine; Version backs
// the optimistic-concurrency loop on counter updates.
type Goal struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	TargetCount      int
	ProgressCount    int
	BonusCount       int
	Status           GoalStatus
	StartAt          time.Time
	DeadlineAt       time.Time // UTC instant
	DeadlineTimezone string    // display only
	CompletedAt      *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewGoal creates a new active Goal with zeroed counters. The goal window
// opens at startAt and closes at deadlineAt.
func NewGoal(userID uuid.UUID, name string, targetCount int, startAt, deadlineAt time.Time, deadlineTimezone string) *Goal {
	now := time.Now().UTC()
	return &Goal{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		TargetCount:      targetCount,
		Status:           GoalStatusActive,
		StartAt:          startAt.UTC(),
		DeadlineAt:       deadlineAt.UTC(),
		DeadlineTimezone: deadlineTimezone,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsEligibleAt reports whether the goal may be credited for a completion
// that happened at the given instant: the goal is not expired and its
// deadline has not passed. Completed goals stay eligible so that extra
// finishes inside the window accrue as bonus.
func (g *Goal) IsEligibleAt(finishedAt time.Time) bool {
	return g.Status != GoalStatusExpired && !g.DeadlineAt.Before(finishedAt)
}

// DeadlinePassed reports whether the goal's window has closed as of now.
func (g *Goal) DeadlinePassed(now time.Time) bool {
	return now.After(g.DeadlineAt)
}
