// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/reading-tracker/backend/internal/application/usecase/goal"
	"github.com/reading-tracker/backend/internal/domain/entity"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// CreateGoalRequest represents the request body for creating a goal.
type CreateGoalRequest struct {
	Name             string     `json:"name" binding:"required,min=1,max=200"`
	TargetCount      int        `json:"target_count" binding:"required"`
	StartAt          *time.Time `json:"start_at"`
	DeadlineAt       time.Time  `json:"deadline_at" binding:"required"`
	DeadlineTimezone string     `json:"deadline_timezone"`
}

// UpdateGoalRequest represents the request body for editing a goal. Absent
// fields are left unchanged.
type UpdateGoalRequest struct {
	Name             *string    `json:"name"`
	TargetCount      *int       `json:"target_count"`
	DeadlineAt       *time.Time `json:"deadline_at"`
	DeadlineTimezone *string    `json:"deadline_timezone"`
}

// OverrideProgressRequest represents the request body for a manual counter
// override.
type OverrideProgressRequest struct {
	ProgressCount int `json:"progress_count" binding:"gte=0"`
}

// GoalProgressResponse represents the derived progress view of a goal.
type GoalProgressResponse struct {
	Percentage     int    `json:"percentage"`
	IsCompleted    bool   `json:"is_completed"`
	IsOverdue      bool   `json:"is_overdue"`
	DaysRemaining  int    `json:"days_remaining"`
	BooksRemaining int    `json:"books_remaining"`
	StatusLabel    string `json:"status_label"`
}

// GoalResponse represents a goal in API responses.
type GoalResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	TargetCount      int                   `json:"target_count"`
	ProgressCount    int                   `json:"progress_count"`
	BonusCount       int                   `json:"bonus_count"`
	Status           string                `json:"status"`
	StartAt          time.Time             `json:"start_at"`
	DeadlineAt       time.Time             `json:"deadline_at"`
	DeadlineTimezone string                `json:"deadline_timezone"`
	CompletedAt      *time.Time            `json:"completed_at,omitempty"`
	Progress         *GoalProgressResponse `json:"progress,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// GoalListResponse represents a user's goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:               g.ID.String(),
		Name:             g.Name,
		TargetCount:      g.TargetCount,
		ProgressCount:    g.ProgressCount,
		BonusCount:       g.BonusCount,
		Status:           string(g.Status),
		StartAt:          g.StartAt,
		DeadlineAt:       g.DeadlineAt,
		DeadlineTimezone: g.DeadlineTimezone,
		CompletedAt:      g.CompletedAt,
		CreatedAt:        g.CreatedAt,
	}
}

// ToGoalResponseWithProgress attaches the derived progress view.
func ToGoalResponseWithProgress(g *entity.Goal, progress valueobject.GoalProgress) GoalResponse {
	response := ToGoalResponse(g)
	response.Progress = &GoalProgressResponse{
		Percentage:     progress.Percentage,
		IsCompleted:    progress.IsCompleted,
		IsOverdue:      progress.IsOverdue,
		DaysRemaining:  progress.DaysRemaining,
		BooksRemaining: progress.BooksRemaining,
		StatusLabel:    progress.StatusLabel,
	}
	return response
}

// ToGoalListResponse converts goals with progress to a GoalListResponse DTO.
func ToGoalListResponse(goals []goal.GoalWithProgress) GoalListResponse {
	response := GoalListResponse{Goals: make([]GoalResponse, 0, len(goals))}
	for _, g := range goals {
		response.Goals = append(response.Goals, ToGoalResponseWithProgress(g.Goal, g.Progress))
	}
	return response
}
