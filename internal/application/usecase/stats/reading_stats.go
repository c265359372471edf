// Package stats aggregates a user's reading activity into summary figures.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
)

// ReadingStatsInput represents the input for computing a user's stats.
type ReadingStatsInput struct {
	UserID uuid.UUID
	Year   int // 0 means the current year
}

// ReadingStatsOutput carries the aggregated figures. Fractional values are
// decimals rounded to two places so the API never leaks float artifacts.
type ReadingStatsOutput struct {
	TotalFinished    int
	FinishedThisYear int
	CurrentlyReading int
	ToRead           int
	PagesRead        int
	AverageRating    decimal.Decimal
	BooksPerMonth    decimal.Decimal
}

// ReadingStatsUseCase computes shelf counts and averages for one user.
type ReadingStatsUseCase struct {
	entryRepo adapter.ReadingEntryRepository
	bookRepo  adapter.BookRepository
}

// NewReadingStatsUseCase creates a new ReadingStatsUseCase instance.
func NewReadingStatsUseCase(entryRepo adapter.ReadingEntryRepository, bookRepo adapter.BookRepository) *ReadingStatsUseCase {
	return &ReadingStatsUseCase{
		entryRepo: entryRepo,
		bookRepo:  bookRepo,
	}
}

// Execute aggregates over the user's entries. Counters derive from the
// entries themselves, never from goal state; goals are a view over the
// same completions, not a second source of truth.
func (uc *ReadingStatsUseCase) Execute(ctx context.Context, input ReadingStatsInput) (*ReadingStatsOutput, error) {
	entries, err := uc.entryRepo.FindByUser(ctx, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading entries: %w", err)
	}

	now := time.Now().UTC()
	year := input.Year
	if year == 0 {
		year = now.Year()
	}

	output := &ReadingStatsOutput{
		AverageRating: decimal.Zero,
		BooksPerMonth: decimal.Zero,
	}

	ratingSum := decimal.Zero
	ratingCount := 0

	for _, entry := range entries {
		switch entry.Status {
		case entity.StatusToRead:
			output.ToRead++
		case entity.StatusReading:
			output.CurrentlyReading++
			output.PagesRead += entry.CurrentPage
		case entity.StatusFinished:
			output.TotalFinished++
			if entry.FinishedAt != nil && entry.FinishedAt.Year() == year {
				output.FinishedThisYear++
			}
			if entry.Rating != nil {
				ratingSum = ratingSum.Add(decimal.NewFromInt(int64(*entry.Rating)))
				ratingCount++
			}
			if book, err := uc.bookRepo.FindByID(ctx, entry.BookID); err == nil {
				output.PagesRead += book.PageCount
			}
		}
	}

	if ratingCount > 0 {
		output.AverageRating = ratingSum.Div(decimal.NewFromInt(int64(ratingCount))).Round(2)
	}

	if output.FinishedThisYear > 0 {
		months := int64(now.Month())
		if year != now.Year() {
			months = 12
		}
		output.BooksPerMonth = decimal.NewFromInt(int64(output.FinishedThisYear)).
			Div(decimal.NewFromInt(months)).Round(2)
	}

	return output, nil
}
