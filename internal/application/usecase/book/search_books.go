// Package book contains book catalog use cases.
package book

import (
	"context"
	"strings"

	"github.com/reading-tracker/backend/internal/application/adapter"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

const searchResultLimit = 10

// SearchBooksInput represents the input for an external catalog search.
type SearchBooksInput struct {
	Query string
}

// SearchBooksOutput represents the output of an external catalog search.
type SearchBooksOutput struct {
	Results []adapter.BookSearchResult
}

// SearchBooksUseCase queries the external book catalog. Results are
// candidates for AddBook; nothing is persisted by the search itself.
type SearchBooksUseCase struct {
	searchService adapter.BookSearchService
}

// NewSearchBooksUseCase creates a new SearchBooksUseCase instance.
func NewSearchBooksUseCase(searchService adapter.BookSearchService) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		searchService: searchService,
	}
}

// Execute performs the search.
func (uc *SearchBooksUseCase) Execute(ctx context.Context, input SearchBooksInput) (*SearchBooksOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &SearchBooksOutput{}, nil
	}

	results, err := uc.searchService.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, domainerror.NewBookError(
			domainerror.ErrCodeBookSearchFailed,
			"external book search failed",
			domainerror.ErrBookSearchFailed,
		)
	}

	return &SearchBooksOutput{Results: results}, nil
}
