// Package valueobject contains domain value objects for the Reading Tracker system.
package valueobject

import (
	"time"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// Progress status labels, in resolution order: completed beats overdue,
// overdue beats not_started, everything else is in_progress.
const (
	ProgressLabelCompleted  = "completed"
	ProgressLabelOverdue    = "overdue"
	ProgressLabelNotStarted = "not_started"
	ProgressLabelInProgress = "in_progress"
)

// GoalProgress is the derived, read-only view of a goal's progress at one
// instant. It carries no identity and is recomputed on every read.
type GoalProgress struct {
	Percentage     int
	IsCompleted    bool
	IsOverdue      bool
	DaysRemaining  int
	BooksRemaining int
	StatusLabel    string
}

// CalculateGoalProgress derives progress metrics from a goal snapshot.
// The computation is pure: it never touches the goal and is safe to run
// concurrently over an already-fetched snapshot.
func CalculateGoalProgress(goal *entity.Goal, now time.Time) GoalProgress {
	progress := GoalProgress{}

	// Floor percentage, clamped to [0,100]. TargetCount of zero never
	// reaches this code through validated goals, but a zero snapshot must
	// not divide.
	if goal.TargetCount > 0 {
		percentage := goal.ProgressCount * 100 / goal.TargetCount
		if percentage > 100 {
			percentage = 100
		}
		if percentage < 0 {
			percentage = 0
		}
		progress.Percentage = percentage
	}

	progress.IsCompleted = goal.Status == entity.GoalStatusCompleted || goal.ProgressCount >= goal.TargetCount
	progress.IsOverdue = now.After(goal.DeadlineAt) && !progress.IsCompleted

	progress.DaysRemaining = daysUntil(now, goal.DeadlineAt)

	if remaining := goal.TargetCount - goal.ProgressCount; remaining > 0 {
		progress.BooksRemaining = remaining
	}

	switch {
	case progress.IsCompleted:
		progress.StatusLabel = ProgressLabelCompleted
	case progress.IsOverdue:
		progress.StatusLabel = ProgressLabelOverdue
	case goal.ProgressCount == 0:
		progress.StatusLabel = ProgressLabelNotStarted
	default:
		progress.StatusLabel = ProgressLabelInProgress
	}

	return progress
}

// daysUntil returns the number of days from now until deadline, rounded up.
// Negative once the deadline has passed.
func daysUntil(now, deadline time.Time) int {
	diff := deadline.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
