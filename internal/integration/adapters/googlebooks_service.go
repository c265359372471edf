// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"

	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"

	"github.com/reading-tracker/backend/internal/application/adapter"
)

// googleBooksService implements the adapter.BookSearchService interface
// against the Google Books volumes API.
type googleBooksService struct {
	service *books.Service
}

// NewGoogleBooksService creates a new Google Books search service. The API
// key is optional; volume search works unauthenticated at a lower quota.
func NewGoogleBooksService(ctx context.Context, apiKey string) (adapter.BookSearchService, error) {
	opts := []option.ClientOption{option.WithoutAuthentication()}
	if apiKey != "" {
		opts = []option.ClientOption{option.WithAPIKey(apiKey)}
	}

	service, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}

	return &googleBooksService{service: service}, nil
}

// Search queries the volumes API and returns up to limit results.
func (s *googleBooksService) Search(ctx context.Context, query string, limit int) ([]adapter.BookSearchResult, error) {
	call := s.service.Volumes.List(query).
		MaxResults(int64(limit)).
		PrintType("books").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query google books: %w", err)
	}

	results := make([]adapter.BookSearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		info := item.VolumeInfo
		if info == nil || info.Title == "" {
			continue
		}

		result := adapter.BookSearchResult{
			Title:     info.Title,
			Authors:   info.Authors,
			PageCount: int(info.PageCount),
			Publisher: info.Publisher,
		}
		if info.ImageLinks != nil {
			result.CoverURL = info.ImageLinks.Thumbnail
		}
		for _, id := range info.IndustryIdentifiers {
			if id.Type == "ISBN_13" {
				result.ISBN = id.Identifier
				break
			}
			if id.Type == "ISBN_10" && result.ISBN == "" {
				result.ISBN = id.Identifier
			}
		}
		results = append(results, result)
	}

	return results, nil
}
