// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/reading-tracker/backend/internal/application/usecase/stats"
)

// StatsResponse represents a user's aggregated reading figures. Decimal
// fields are serialized as strings to keep exact values.
type StatsResponse struct {
	TotalFinished    int    `json:"total_finished"`
	FinishedThisYear int    `json:"finished_this_year"`
	CurrentlyReading int    `json:"currently_reading"`
	ToRead           int    `json:"to_read"`
	PagesRead        int    `json:"pages_read"`
	AverageRating    string `json:"average_rating"`
	BooksPerMonth    string `json:"books_per_month"`
}

// ToStatsResponse converts usecase output to a StatsResponse DTO.
func ToStatsResponse(output *stats.ReadingStatsOutput) StatsResponse {
	return StatsResponse{
		TotalFinished:    output.TotalFinished,
		FinishedThisYear: output.FinishedThisYear,
		CurrentlyReading: output.CurrentlyReading,
		ToRead:           output.ToRead,
		PagesRead:        output.PagesRead,
		AverageRating:    output.AverageRating.String(),
		BooksPerMonth:    output.BooksPerMonth.String(),
	}
}
