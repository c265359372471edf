package reading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/application/usecase/progress"
	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

type readingFixture struct {
	store     *memStore
	entryRepo *memEntryRepo
	bookRepo  *memBookRepo
	goalRepo  *memGoalRepo
	auditRepo *memAuditRepo
	change    *ChangeStatusUseCase
	remove    *RemoveEntryUseCase
}

func newReadingFixture() *readingFixture {
	store := newMemStore()
	entryRepo := &memEntryRepo{store: store}
	bookRepo := &memBookRepo{store: store}
	goalRepo := &memGoalRepo{store: store}
	auditRepo := &memAuditRepo{store: store}
	record := progress.NewRecordCompletionUseCase(goalRepo, auditRepo)
	reverse := progress.NewReverseCompletionUseCase(goalRepo, auditRepo)
	return &readingFixture{
		store:     store,
		entryRepo: entryRepo,
		bookRepo:  bookRepo,
		goalRepo:  goalRepo,
		auditRepo: auditRepo,
		change:    NewChangeStatusUseCase(entryRepo, bookRepo, record, reverse),
		remove:    NewRemoveEntryUseCase(entryRepo, reverse),
	}
}

func (f *readingFixture) seedBook(pageCount int) *entity.Book {
	book := entity.NewBook("The Go Programming Language", []string{"Alan Donovan", "Brian Kernighan"}, pageCount, "9780134190440")
	f.store.books[book.ID] = book
	return book
}

func (f *readingFixture) seedEntry(userID uuid.UUID, book *entity.Book, status entity.ReadingStatus) *entity.ReadingEntry {
	entry := entity.NewReadingEntry(userID, book.ID)
	entry.Status = status
	f.store.entries[entry.ID] = entry
	return entry
}

func (f *readingFixture) seedGoal(userID uuid.UUID, target int, deadline time.Time) *entity.Goal {
	goal := entity.NewGoal(userID, "yearly reading", target, deadline.AddDate(-1, 0, 0), deadline, "UTC")
	f.store.goals[goal.ID] = goal
	return goal
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("finishing an entry credits the user's active goals", func(t *testing.T) {
		f := newReadingFixture()
		userID := uuid.New()
		book := f.seedBook(380)
		entry := f.seedEntry(userID, book, entity.StatusReading)
		goal := f.seedGoal(userID, 5, time.Now().UTC().Add(30*24*time.Hour))

		output, err := f.change.Execute(ctx, ChangeStatusInput{
			EntryID:      entry.ID,
			UserID:       userID,
			TargetStatus: entity.StatusFinished,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.GoalFailures) != 0 {
			t.Fatalf("expected no goal failures, got %v", output.GoalFailures)
		}
		if output.Entry.Status != entity.StatusFinished {
			t.Errorf("expected status finished, got %s", output.Entry.Status)
		}
		if output.Entry.FinishedAt == nil {
			t.Error("expected FinishedAt to be set")
		}
		if output.Entry.CurrentPage != 380 {
			t.Errorf("expected current page 380, got %d", output.Entry.CurrentPage)
		}

		stored := f.store.goals[goal.ID]
		if stored.ProgressCount != 1 {
			t.Errorf("expected goal progress 1, got %d", stored.ProgressCount)
		}
		if len(f.store.audits) != 1 {
			t.Errorf("expected one audit row, got %d", len(f.store.audits))
		}
	})

	t.Run("unfinishing an entry reverses the credit", func(t *testing.T) {
		f := newReadingFixture()
		userID := uuid.New()
		book := f.seedBook(380)
		entry := f.seedEntry(userID, book, entity.StatusReading)
		goal := f.seedGoal(userID, 5, time.Now().UTC().Add(30*24*time.Hour))

		if _, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: entry.ID, UserID: userID, TargetStatus: entity.StatusFinished}); err != nil {
			t.Fatalf("finish: %v", err)
		}
		output, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: entry.ID, UserID: userID, TargetStatus: entity.StatusReading})
		if err != nil {
			t.Fatalf("unfinish: %v", err)
		}

		if output.Entry.FinishedAt != nil {
			t.Error("expected FinishedAt cleared")
		}
		if stored := f.store.goals[goal.ID]; stored.ProgressCount != 0 {
			t.Errorf("expected goal progress back to 0, got %d", stored.ProgressCount)
		}
		if len(f.store.audits) != 0 {
			t.Errorf("expected audit rows deleted, got %d", len(f.store.audits))
		}
	})

	t.Run("transition log records every change in order", func(t *testing.T) {
		f := newReadingFixture()
		userID := uuid.New()
		book := f.seedBook(200)
		entry := f.seedEntry(userID, book, entity.StatusToRead)

		for _, target := range []entity.ReadingStatus{entity.StatusReading, entity.StatusFinished} {
			if _, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: entry.ID, UserID: userID, TargetStatus: target}); err != nil {
				t.Fatalf("transition to %s: %v", target, err)
			}
		}

		records, err := f.entryRepo.FindTransitionsByEntry(ctx, entry.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 transition records, got %d", len(records))
		}
		if *records[0].FromStatus != entity.StatusToRead || records[0].ToStatus != entity.StatusReading {
			t.Errorf("unexpected first record: %v -> %s", *records[0].FromStatus, records[0].ToStatus)
		}
		if *records[1].FromStatus != entity.StatusReading || records[1].ToStatus != entity.StatusFinished {
			t.Errorf("unexpected second record: %v -> %s", *records[1].FromStatus, records[1].ToStatus)
		}
	})

	t.Run("rejects a skip transition without side effects", func(t *testing.T) {
		f := newReadingFixture()
		userID := uuid.New()
		book := f.seedBook(200)
		entry := f.seedEntry(userID, book, entity.StatusToRead)
		goal := f.seedGoal(userID, 5, time.Now().UTC().Add(30*24*time.Hour))

		_, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: entry.ID, UserID: userID, TargetStatus: entity.StatusFinished})
		if !errors.Is(err, domainerror.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if f.store.entries[entry.ID].Status != entity.StatusToRead {
			t.Error("expected entry status unchanged")
		}
		if len(f.store.transitions) != 0 {
			t.Error("expected no transition record for a rejected change")
		}
		if f.store.goals[goal.ID].ProgressCount != 0 {
			t.Error("expected goal untouched by a rejected change")
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		f := newReadingFixture()
		_, err := f.change.Execute(ctx, ChangeStatusInput{
			EntryID:      uuid.New(),
			UserID:       uuid.New(),
			TargetStatus: entity.ReadingStatus("abandoned"),
		})
		if !errors.Is(err, domainerror.ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("rejects another user's entry", func(t *testing.T) {
		f := newReadingFixture()
		book := f.seedBook(200)
		entry := f.seedEntry(uuid.New(), book, entity.StatusReading)

		_, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: entry.ID, UserID: uuid.New(), TargetStatus: entity.StatusFinished})
		if !errors.Is(err, domainerror.ErrUnauthorizedEntryAccess) {
			t.Fatalf("expected ErrUnauthorizedEntryAccess, got %v", err)
		}
	})

	t.Run("returns not found for a missing entry", func(t *testing.T) {
		f := newReadingFixture()
		_, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: uuid.New(), UserID: uuid.New(), TargetStatus: entity.StatusReading})
		if !errors.Is(err, domainerror.ErrReadingEntryNotFound) {
			t.Fatalf("expected ErrReadingEntryNotFound, got %v", err)
		}
	})
}

func TestRemoveEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a finished entry reverses its credits", func(t *testing.T) {
		f := newReadingFixture()
		userID := uuid.New()
		book := f.seedBook(200)
		entry := f.seedEntry(userID, book, entity.StatusReading)
		goal := f.seedGoal(userID, 5, time.Now().UTC().Add(30*24*time.Hour))

		if _, err := f.change.Execute(ctx, ChangeStatusInput{EntryID: entry.ID, UserID: userID, TargetStatus: entity.StatusFinished}); err != nil {
			t.Fatalf("finish: %v", err)
		}
		if _, err := f.remove.Execute(ctx, RemoveEntryInput{EntryID: entry.ID, UserID: userID}); err != nil {
			t.Fatalf("remove: %v", err)
		}

		if _, ok := f.store.entries[entry.ID]; ok {
			t.Error("expected entry deleted")
		}
		if stored := f.store.goals[goal.ID]; stored.ProgressCount != 0 {
			t.Errorf("expected goal progress 0, got %d", stored.ProgressCount)
		}
		if len(f.store.audits) != 0 {
			t.Errorf("expected audit rows deleted, got %d", len(f.store.audits))
		}
	})

	t.Run("deleting an unfinished entry leaves goals alone", func(t *testing.T) {
		f := newReadingFixture()
		userID := uuid.New()
		book := f.seedBook(200)
		entry := f.seedEntry(userID, book, entity.StatusReading)
		goal := f.seedGoal(userID, 5, time.Now().UTC().Add(30*24*time.Hour))
		goal.ProgressCount = 2
		f.store.goals[goal.ID] = goal

		if _, err := f.remove.Execute(ctx, RemoveEntryInput{EntryID: entry.ID, UserID: userID}); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if stored := f.store.goals[goal.ID]; stored.ProgressCount != 2 {
			t.Errorf("expected goal progress unchanged at 2, got %d", stored.ProgressCount)
		}
	})

	t.Run("rejects another user's entry", func(t *testing.T) {
		f := newReadingFixture()
		book := f.seedBook(200)
		entry := f.seedEntry(uuid.New(), book, entity.StatusToRead)

		_, err := f.remove.Execute(ctx, RemoveEntryInput{EntryID: entry.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrUnauthorizedEntryAccess) {
			t.Fatalf("expected ErrUnauthorizedEntryAccess, got %v", err)
		}
		if _, ok := f.store.entries[entry.ID]; !ok {
			t.Error("expected entry to remain")
		}
	})
}
