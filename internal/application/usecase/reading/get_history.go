// Package reading contains reading-entry use cases.
package reading

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// GetHistoryInput represents the input for fetching an entry's transition log.
type GetHistoryInput struct {
	EntryID uuid.UUID
	UserID  uuid.UUID
}

// GetHistoryOutput represents the output of fetching an entry's transition log.
type GetHistoryOutput struct {
	Entry       *entity.ReadingEntry
	Transitions []*entity.StatusTransitionRecord
}

// GetHistoryUseCase returns the append-only status history of an entry.
type GetHistoryUseCase struct {
	entryRepo adapter.ReadingEntryRepository
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(entryRepo adapter.ReadingEntryRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		entryRepo: entryRepo,
	}
}

// Execute retrieves the transition records, oldest first.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	entry, err := uc.entryRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReadingEntryNotFound) {
			return nil, domainerror.NewReadingError(
				domainerror.ErrCodeEntryNotFound,
				"reading entry not found",
				domainerror.ErrReadingEntryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find reading entry: %w", err)
	}

	if entry.UserID != input.UserID {
		return nil, domainerror.NewReadingError(
			domainerror.ErrCodeUnauthorizedEntry,
			"not authorized to view this entry",
			domainerror.ErrUnauthorizedEntryAccess,
		)
	}

	transitions, err := uc.entryRepo.FindTransitionsByEntry(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transitions: %w", err)
	}

	return &GetHistoryOutput{Entry: entry, Transitions: transitions}, nil
}
