// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/reading-tracker/backend/internal/domain/entity"
)

// CreateEntryRequest represents the request body for shelving a book.
type CreateEntryRequest struct {
	BookID string `json:"book_id" binding:"required,uuid"`
}

// ChangeStatusRequest represents the request body for a status change.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePageRequest represents the request body for a reading-position update.
type UpdatePageRequest struct {
	CurrentPage int `json:"current_page" binding:"gte=0"`
}

// ReviewEntryRequest represents the request body for rating and reflecting.
type ReviewEntryRequest struct {
	Rating         *int    `json:"rating"`
	ReflectionNote *string `json:"reflection_note"`
}

// ReadingEntryResponse represents a reading entry in API responses.
type ReadingEntryResponse struct {
	ID             string     `json:"id"`
	BookID         string     `json:"book_id"`
	Status         string     `json:"status"`
	Rating         *int       `json:"rating,omitempty"`
	ReflectionNote string     `json:"reflection_note,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	CurrentPage    int        `json:"current_page"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// EntryListResponse represents a user's shelf.
type EntryListResponse struct {
	Entries []ReadingEntryResponse `json:"entries"`
}

// TransitionResponse represents one status transition record.
type TransitionResponse struct {
	FromStatus     *string   `json:"from_status"`
	ToStatus       string    `json:"to_status"`
	TransitionedAt time.Time `json:"transitioned_at"`
}

// EntryHistoryResponse represents an entry's transition log.
type EntryHistoryResponse struct {
	Entry       ReadingEntryResponse `json:"entry"`
	Transitions []TransitionResponse `json:"transitions"`
}

// StatusChangeResponse represents the result of a status change, including
// any goals whose counters could not be updated.
type StatusChangeResponse struct {
	Entry       ReadingEntryResponse `json:"entry"`
	FailedGoals []string             `json:"failed_goals,omitempty"`
}

// ToReadingEntryResponse converts a domain entry to its DTO.
func ToReadingEntryResponse(entry *entity.ReadingEntry) ReadingEntryResponse {
	return ReadingEntryResponse{
		ID:             entry.ID.String(),
		BookID:         entry.BookID.String(),
		Status:         string(entry.Status),
		Rating:         entry.Rating,
		ReflectionNote: entry.ReflectionNote,
		FinishedAt:     entry.FinishedAt,
		CurrentPage:    entry.CurrentPage,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
}

// ToEntryListResponse converts domain entries to an EntryListResponse DTO.
func ToEntryListResponse(entries []*entity.ReadingEntry) EntryListResponse {
	response := EntryListResponse{Entries: make([]ReadingEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.Entries = append(response.Entries, ToReadingEntryResponse(entry))
	}
	return response
}

// ToTransitionResponses converts transition records to DTOs.
func ToTransitionResponses(records []*entity.StatusTransitionRecord) []TransitionResponse {
	responses := make([]TransitionResponse, 0, len(records))
	for _, record := range records {
		var from *string
		if record.FromStatus != nil {
			status := string(*record.FromStatus)
			from = &status
		}
		responses = append(responses, TransitionResponse{
			FromStatus:     from,
			ToStatus:       string(record.ToStatus),
			TransitionedAt: record.TransitionedAt,
		})
	}
	return responses
}
