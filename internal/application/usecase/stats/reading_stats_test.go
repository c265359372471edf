package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

type fakeStore struct {
	books   map[uuid.UUID]*entity.Book
	entries []*entity.ReadingEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{books: make(map[uuid.UUID]*entity.Book)}
}

func (s *fakeStore) Create(_ context.Context, entry *entity.ReadingEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*entity.ReadingEntry, error) {
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, domainerror.ErrReadingEntryNotFound
}

func (s *fakeStore) FindByUserAndBook(_ context.Context, _, _ uuid.UUID) (*entity.ReadingEntry, error) {
	return nil, nil
}

func (s *fakeStore) FindByUser(_ context.Context, userID uuid.UUID, status *entity.ReadingStatus) ([]*entity.ReadingEntry, error) {
	var entries []*entity.ReadingEntry
	for _, entry := range s.entries {
		if entry.UserID == userID && (status == nil || entry.Status == *status) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *fakeStore) FindFinishedInWindow(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*entity.ReadingEntry, error) {
	return nil, nil
}

func (s *fakeStore) Update(_ context.Context, _ *entity.ReadingEntry) error { return nil }

func (s *fakeStore) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (s *fakeStore) CreateTransitionRecord(_ context.Context, _ *entity.StatusTransitionRecord) error {
	return nil
}

func (s *fakeStore) FindTransitionsByEntry(_ context.Context, _ uuid.UUID) ([]*entity.StatusTransitionRecord, error) {
	return nil, nil
}

type fakeBooks struct {
	books map[uuid.UUID]*entity.Book
}

func (b *fakeBooks) Create(_ context.Context, book *entity.Book) error {
	b.books[book.ID] = book
	return nil
}

func (b *fakeBooks) FindByID(_ context.Context, id uuid.UUID) (*entity.Book, error) {
	if book, ok := b.books[id]; ok {
		return book, nil
	}
	return nil, domainerror.ErrBookNotFound
}

func (b *fakeBooks) FindByISBN(_ context.Context, _ string) (*entity.Book, error) { return nil, nil }

func (b *fakeBooks) List(_ context.Context, _, _ int) ([]*entity.Book, error) { return nil, nil }

func seedFinished(store *fakeStore, books *fakeBooks, userID uuid.UUID, pages int, rating *int, finishedAt time.Time) {
	book := entity.NewBook("b", nil, pages, "")
	books.books[book.ID] = book
	entry := entity.NewReadingEntry(userID, book.ID)
	entry.Status = entity.StatusFinished
	entry.FinishedAt = &finishedAt
	entry.Rating = rating
	store.entries = append(store.entries, entry)
}

func intPtr(v int) *int { return &v }

func TestReadingStats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates shelves, pages, and averages", func(t *testing.T) {
		store := newFakeStore()
		books := &fakeBooks{books: make(map[uuid.UUID]*entity.Book)}
		userID := uuid.New()
		now := time.Now().UTC()

		seedFinished(store, books, userID, 300, intPtr(5), now)
		seedFinished(store, books, userID, 200, intPtr(4), now)
		seedFinished(store, books, userID, 150, nil, now.AddDate(-1, 0, 0))

		reading := entity.NewReadingEntry(userID, uuid.New())
		reading.Status = entity.StatusReading
		reading.CurrentPage = 80
		store.entries = append(store.entries, reading)

		toRead := entity.NewReadingEntry(userID, uuid.New())
		store.entries = append(store.entries, toRead)

		uc := NewReadingStatsUseCase(store, books)
		output, err := uc.Execute(ctx, ReadingStatsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.TotalFinished != 3 {
			t.Errorf("expected 3 finished, got %d", output.TotalFinished)
		}
		if output.FinishedThisYear != 2 {
			t.Errorf("expected 2 finished this year, got %d", output.FinishedThisYear)
		}
		if output.CurrentlyReading != 1 || output.ToRead != 1 {
			t.Errorf("unexpected shelf counts: reading %d to_read %d", output.CurrentlyReading, output.ToRead)
		}
		// 300 + 200 + 150 finished plus 80 in flight.
		if output.PagesRead != 730 {
			t.Errorf("expected 730 pages, got %d", output.PagesRead)
		}
		if !output.AverageRating.Equal(decimal.NewFromFloat(4.5)) {
			t.Errorf("expected average rating 4.5, got %s", output.AverageRating)
		}
	})

	t.Run("empty shelf yields zero decimals", func(t *testing.T) {
		store := newFakeStore()
		books := &fakeBooks{books: make(map[uuid.UUID]*entity.Book)}
		uc := NewReadingStatsUseCase(store, books)

		output, err := uc.Execute(ctx, ReadingStatsInput{UserID: uuid.New()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.AverageRating.IsZero() || !output.BooksPerMonth.IsZero() {
			t.Errorf("expected zero averages, got %s and %s", output.AverageRating, output.BooksPerMonth)
		}
	})

	t.Run("past year uses a full twelve months", func(t *testing.T) {
		store := newFakeStore()
		books := &fakeBooks{books: make(map[uuid.UUID]*entity.Book)}
		userID := uuid.New()
		lastYear := time.Date(time.Now().UTC().Year()-1, time.June, 1, 0, 0, 0, 0, time.UTC)

		for i := 0; i < 6; i++ {
			seedFinished(store, books, userID, 100, nil, lastYear)
		}

		uc := NewReadingStatsUseCase(store, books)
		output, err := uc.Execute(ctx, ReadingStatsInput{UserID: userID, Year: lastYear.Year()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.FinishedThisYear != 6 {
			t.Errorf("expected 6 finished in %d, got %d", lastYear.Year(), output.FinishedThisYear)
		}
		if !output.BooksPerMonth.Equal(decimal.NewFromFloat(0.5)) {
			t.Errorf("expected 0.5 books per month, got %s", output.BooksPerMonth)
		}
	})
}
