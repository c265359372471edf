// Package progress contains the goal-progress consistency engine.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reading-tracker/backend/internal/domain/entity"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// fakeStore backs the in-memory repository fakes. Goals and audit rows live
// in one place so the transactional credit/revert operations can touch both,
// mirroring the real repository.
type fakeStore struct {
	mu      sync.Mutex
	goals   map[uuid.UUID]*entity.Goal
	audits  map[uuid.UUID]*entity.ProgressAuditEntry
	entries []*entity.ReadingEntry

	// conflictsRemaining makes the next N optimistic writes fail to
	// exercise the retry loop.
	conflictsRemaining int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		goals:  make(map[uuid.UUID]*entity.Goal),
		audits: make(map[uuid.UUID]*entity.ProgressAuditEntry),
	}
}

func (s *fakeStore) putGoal(goal *entity.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *goal
	s.goals[goal.ID] = &copied
}

func (s *fakeStore) getGoal(id uuid.UUID) *entity.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if goal, ok := s.goals[id]; ok {
		copied := *goal
		return &copied
	}
	return nil
}

func (s *fakeStore) auditCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audits)
}

func (s *fakeStore) findAudit(goalID, entryID uuid.UUID) *entity.ProgressAuditEntry {
	for _, audit := range s.audits {
		if audit.GoalID == goalID && audit.ReadingEntryID == entryID {
			return audit
		}
	}
	return nil
}

// fakeGoalRepo implements adapter.GoalRepository over a fakeStore.
type fakeGoalRepo struct {
	store *fakeStore
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *entity.Goal) error {
	r.store.putGoal(goal)
	return nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	if goal := r.store.getGoal(id); goal != nil {
		return goal, nil
	}
	return nil, domainerror.ErrGoalNotFound
}

func (r *fakeGoalRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var goals []*entity.Goal
	for _, goal := range r.store.goals {
		if goal.UserID == userID {
			copied := *goal
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (r *fakeGoalRepo) FindEligibleGoals(_ context.Context, userID uuid.UUID, asOf time.Time) ([]*entity.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var goals []*entity.Goal
	for _, goal := range r.store.goals {
		if goal.UserID == userID && goal.IsEligibleAt(asOf) {
			copied := *goal
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (r *fakeGoalRepo) FindExpirable(_ context.Context, asOf time.Time) ([]*entity.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var goals []*entity.Goal
	for _, goal := range r.store.goals {
		if goal.Status == entity.GoalStatusActive && asOf.After(goal.DeadlineAt) && goal.ProgressCount < goal.TargetCount {
			copied := *goal
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *entity.Goal) error {
	r.store.putGoal(goal)
	return nil
}

func (r *fakeGoalRepo) writeWithVersion(goal *entity.Goal, expectedVersion int) bool {
	stored, ok := r.store.goals[goal.ID]
	if !ok || stored.Version != expectedVersion {
		return false
	}
	if r.store.conflictsRemaining > 0 {
		r.store.conflictsRemaining--
		stored.Version++ // simulate the competing writer
		return false
	}
	goal.Version = expectedVersion + 1
	copied := *goal
	r.store.goals[goal.ID] = &copied
	return true
}

func (r *fakeGoalRepo) UpdateWithVersion(_ context.Context, goal *entity.Goal, expectedVersion int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.writeWithVersion(goal, expectedVersion), nil
}

func (r *fakeGoalRepo) CreditGoal(_ context.Context, goal *entity.Goal, expectedVersion int, audit *entity.ProgressAuditEntry) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.writeWithVersion(goal, expectedVersion) {
		return false, nil
	}
	r.store.audits[audit.ID] = audit
	return true, nil
}

func (r *fakeGoalRepo) RevertGoal(_ context.Context, goal *entity.Goal, expectedVersion int, readingEntryID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.writeWithVersion(goal, expectedVersion) {
		return false, nil
	}
	for id, audit := range r.store.audits {
		if audit.GoalID == goal.ID && audit.ReadingEntryID == readingEntryID {
			delete(r.store.audits, id)
			break
		}
	}
	return true, nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.goals, id)
	return nil
}

// fakeAuditRepo implements adapter.ProgressAuditRepository over a fakeStore.
type fakeAuditRepo struct {
	store *fakeStore
}

func (r *fakeAuditRepo) Create(_ context.Context, audit *entity.ProgressAuditEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits[audit.ID] = audit
	return nil
}

func (r *fakeAuditRepo) FindByGoal(_ context.Context, goalID uuid.UUID) ([]*entity.ProgressAuditEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var audits []*entity.ProgressAuditEntry
	for _, audit := range r.store.audits {
		if audit.GoalID == goalID {
			audits = append(audits, audit)
		}
	}
	return audits, nil
}

func (r *fakeAuditRepo) FindByReadingEntry(_ context.Context, readingEntryID uuid.UUID) ([]*entity.ProgressAuditEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var audits []*entity.ProgressAuditEntry
	for _, audit := range r.store.audits {
		if audit.ReadingEntryID == readingEntryID {
			audits = append(audits, audit)
		}
	}
	return audits, nil
}

func (r *fakeAuditRepo) ExistsByGoalAndEntry(_ context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.findAudit(goalID, readingEntryID) != nil, nil
}

func (r *fakeAuditRepo) DeleteByGoalAndEntry(_ context.Context, goalID, readingEntryID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, audit := range r.store.audits {
		if audit.GoalID == goalID && audit.ReadingEntryID == readingEntryID {
			delete(r.store.audits, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAuditRepo) DeleteByGoal(_ context.Context, goalID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, audit := range r.store.audits {
		if audit.GoalID == goalID {
			delete(r.store.audits, id)
		}
	}
	return nil
}

// fakeEntryRepo implements the slice of adapter.ReadingEntryRepository the
// reconciler needs.
type fakeEntryRepo struct {
	store *fakeStore
}

func (r *fakeEntryRepo) Create(_ context.Context, entry *entity.ReadingEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries = append(r.store.entries, entry)
	return nil
}

func (r *fakeEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ReadingEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, entry := range r.store.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, domainerror.ErrReadingEntryNotFound
}

func (r *fakeEntryRepo) FindByUserAndBook(_ context.Context, userID, bookID uuid.UUID) (*entity.ReadingEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, entry := range r.store.entries {
		if entry.UserID == userID && entry.BookID == bookID {
			return entry, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) FindByUser(_ context.Context, userID uuid.UUID, status *entity.ReadingStatus) ([]*entity.ReadingEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var entries []*entity.ReadingEntry
	for _, entry := range r.store.entries {
		if entry.UserID == userID && (status == nil || entry.Status == *status) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *fakeEntryRepo) FindFinishedInWindow(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.ReadingEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var entries []*entity.ReadingEntry
	for _, entry := range r.store.entries {
		if entry.UserID != userID || entry.Status != entity.StatusFinished || entry.FinishedAt == nil {
			continue
		}
		if entry.FinishedAt.Before(from) || entry.FinishedAt.After(to) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, entry *entity.ReadingEntry) error {
	return nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, entry := range r.store.entries {
		if entry.ID == id {
			r.store.entries = append(r.store.entries[:i], r.store.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeEntryRepo) CreateTransitionRecord(_ context.Context, _ *entity.StatusTransitionRecord) error {
	return nil
}

func (r *fakeEntryRepo) FindTransitionsByEntry(_ context.Context, _ uuid.UUID) ([]*entity.StatusTransitionRecord, error) {
	return nil, nil
}
