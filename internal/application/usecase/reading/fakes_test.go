package reading

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// memStore is a simple in-memory backing store for the reading usecase
// tests. The goal and audit maps exist so the real progress usecases can be
// wired in and observed end to end.
type memStore struct {
	books       map[uuid.UUID]*entity.Book
	entries     map[uuid.UUID]*entity.ReadingEntry
	transitions []*entity.StatusTransitionRecord
	goals       map[uuid.UUID]*entity.Goal
	audits      map[uuid.UUID]*entity.ProgressAuditEntry
}

func newMemStore() *memStore {
	return &memStore{
		books:   make(map[uuid.UUID]*entity.Book),
		entries: make(map[uuid.UUID]*entity.ReadingEntry),
		goals:   make(map[uuid.UUID]*entity.Goal),
		audits:  make(map[uuid.UUID]*entity.ProgressAuditEntry),
	}
}

type memBookRepo struct{ store *memStore }

func (r *memBookRepo) Create(_ context.Context, book *entity.Book) error {
	r.store.books[book.ID] = book
	return nil
}

func (r *memBookRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Book, error) {
	if book, ok := r.store.books[id]; ok {
		return book, nil
	}
	return nil, domainerror.ErrBookNotFound
}

func (r *memBookRepo) FindByISBN(_ context.Context, isbn string) (*entity.Book, error) {
	for _, book := range r.store.books {
		if book.ISBN == isbn {
			return book, nil
		}
	}
	return nil, nil
}

func (r *memBookRepo) List(_ context.Context, _, _ int) ([]*entity.Book, error) {
	var books []*entity.Book
	for _, book := range r.store.books {
		books = append(books, book)
	}
	return books, nil
}

type memEntryRepo struct{ store *memStore }

func (r *memEntryRepo) Create(_ context.Context, entry *entity.ReadingEntry) error {
	copied := *entry
	r.store.entries[entry.ID] = &copied
	return nil
}

func (r *memEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ReadingEntry, error) {
	if entry, ok := r.store.entries[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, domainerror.ErrReadingEntryNotFound
}

func (r *memEntryRepo) FindByUserAndBook(_ context.Context, userID, bookID uuid.UUID) (*entity.ReadingEntry, error) {
	for _, entry := range r.store.entries {
		if entry.UserID == userID && entry.BookID == bookID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memEntryRepo) FindByUser(_ context.Context, userID uuid.UUID, status *entity.ReadingStatus) ([]*entity.ReadingEntry, error) {
	var entries []*entity.ReadingEntry
	for _, entry := range r.store.entries {
		if entry.UserID == userID && (status == nil || entry.Status == *status) {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	return entries, nil
}

func (r *memEntryRepo) FindFinishedInWindow(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.ReadingEntry, error) {
	var entries []*entity.ReadingEntry
	for _, entry := range r.store.entries {
		if entry.UserID != userID || entry.Status != entity.StatusFinished || entry.FinishedAt == nil {
			continue
		}
		if entry.FinishedAt.Before(from) || entry.FinishedAt.After(to) {
			continue
		}
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries, nil
}

func (r *memEntryRepo) Update(_ context.Context, entry *entity.ReadingEntry) error {
	copied := *entry
	r.store.entries[entry.ID] = &copied
	return nil
}

func (r *memEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.entries, id)
	return nil
}

func (r *memEntryRepo) CreateTransitionRecord(_ context.Context, record *entity.StatusTransitionRecord) error {
	r.store.transitions = append(r.store.transitions, record)
	return nil
}

func (r *memEntryRepo) FindTransitionsByEntry(_ context.Context, entryID uuid.UUID) ([]*entity.StatusTransitionRecord, error) {
	var records []*entity.StatusTransitionRecord
	for _, record := range r.store.transitions {
		if record.ReadingEntryID == entryID {
			records = append(records, record)
		}
	}
	return records, nil
}

type memGoalRepo struct{ store *memStore }

func (r *memGoalRepo) Create(_ context.Context, goal *entity.Goal) error {
	copied := *goal
	r.store.goals[goal.ID] = &copied
	return nil
}

func (r *memGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	if goal, ok := r.store.goals[id]; ok {
		copied := *goal
		return &copied, nil
	}
	return nil, domainerror.ErrGoalNotFound
}

func (r *memGoalRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goals []*entity.Goal
	for _, goal := range r.store.goals {
		if goal.UserID == userID {
			copied := *goal
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (r *memGoalRepo) FindEligibleGoals(_ context.Context, userID uuid.UUID, asOf time.Time) ([]*entity.Goal, error) {
	var goals []*entity.Goal
	for _, goal := range r.store.goals {
		if goal.UserID == userID && goal.IsEligibleAt(asOf) {
			copied := *goal
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (r *memGoalRepo) FindExpirable(_ context.Context, _ time.Time) ([]*entity.Goal, error) {
	return nil, nil
}

func (r *memGoalRepo) Update(_ context.Context, goal *entity.Goal) error {
	copied := *goal
	r.store.goals[goal.ID] = &copied
	return nil
}

func (r *memGoalRepo) UpdateWithVersion(_ context.Context, goal *entity.Goal, expectedVersion int) (bool, error) {
	stored, ok := r.store.goals[goal.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	goal.Version = expectedVersion + 1
	copied := *goal
	r.store.goals[goal.ID] = &copied
	return true, nil
}

func (r *memGoalRepo) CreditGoal(ctx context.Context, goal *entity.Goal, expectedVersion int, audit *entity.ProgressAuditEntry) (bool, error) {
	ok, err := r.UpdateWithVersion(ctx, goal, expectedVersion)
	if !ok || err != nil {
		return ok, err
	}
	r.store.audits[audit.ID] = audit
	return true, nil
}

func (r *memGoalRepo) RevertGoal(ctx context.Context, goal *entity.Goal, expectedVersion int, readingEntryID uuid.UUID) (bool, error) {
	ok, err := r.UpdateWithVersion(ctx, goal, expectedVersion)
	if !ok || err != nil {
		return ok, err
	}
	for id, audit := range r.store.audits {
		if audit.GoalID == goal.ID && audit.ReadingEntryID == readingEntryID {
			delete(r.store.audits, id)
			break
		}
	}
	return true, nil
}

func (r *memGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.goals, id)
	return nil
}

type memAuditRepo struct{ store *memStore }

func (r *memAuditRepo) Create(_ context.Context, audit *entity.ProgressAuditEntry) error {
	r.store.audits[audit.ID] = audit
	return nil
}

func (r *memAuditRepo) FindByGoal(_ context.Context, goalID uuid.UUID) ([]*entity.ProgressAuditEntry, error) {
	var audits []*entity.ProgressAuditEntry
	for _, audit := range r.store.audits {
		if audit.GoalID == goalID {
			audits = append(audits, audit)
		}
	}
	return audits, nil
}

func (r *memAuditRepo) FindByReadingEntry(_ context.Context, readingEntryID uuid.UUID) ([]*entity.ProgressAuditEntry, error) {
	var audits []*entity.ProgressAuditEntry
	for _, audit := range r.store.audits {
		if audit.ReadingEntryID == readingEntryID {
			audits = append(audits, audit)
		}
	}
	return audits, nil
}

func (r *memAuditRepo) ExistsByGoalAndEntry(_ context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	for _, audit := range r.store.audits {
		if audit.GoalID == goalID && audit.ReadingEntryID == readingEntryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAuditRepo) DeleteByGoalAndEntry(_ context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	for id, audit := range r.store.audits {
		if audit.GoalID == goalID && audit.ReadingEntryID == readingEntryID {
			delete(r.store.audits, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *memAuditRepo) DeleteByGoal(_ context.Context, goalID uuid.UUID) error {
	for id, audit := range r.store.audits {
		if audit.GoalID == goalID {
			delete(r.store.audits, id)
		}
	}
	return nil
}
