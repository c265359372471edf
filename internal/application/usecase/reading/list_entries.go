// Package reading contains reading-entry use cases.
package reading

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
	"github.com/reading-tracker/backend/internal/domain/valueobject"
)

// ListEntriesInput represents the input for listing a user's shelf.
type ListEntriesInput struct {
	UserID uuid.UUID
	Status *entity.ReadingStatus // optional filter
}

// ListEntriesOutput represents the output of listing a user's shelf.
type ListEntriesOutput struct {
	Entries []*entity.ReadingEntry
}

// ListEntriesUseCase lists the user's reading entries.
type ListEntriesUseCase struct {
	entryRepo adapter.ReadingEntryRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(entryRepo adapter.ReadingEntryRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		entryRepo: entryRepo,
	}
}

// Execute retrieves the entries, optionally filtered by status.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	if input.Status != nil && !valueobject.ValidStatus(*input.Status) {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeInvalidStatus,
			"status must be 'to_read', 'reading', or 'finished'",
			domainerror.ErrInvalidStatus,
		)
	}

	entries, err := uc.entryRepo.FindByUser(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading entries: %w", err)
	}

	return &ListEntriesOutput{Entries: entries}, nil
}
