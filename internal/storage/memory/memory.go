// Package memory provides an in-memory implementation of storage.Store used for
// tests and ephemeral environments.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type mealKey struct {
	messID string
	userID string
	date   string
}

// Store keeps every record in maps guarded by one lock.
type Store struct {
	mu sync.RWMutex

	messes   map[string]models.Mess
	codes    map[string]string
	members  map[string]models.Member
	meals    map[mealKey]models.MealEntry
	deposits []models.DepositEntry
	costs    []models.CostEntry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		messes:  make(map[string]models.Mess),
		codes:   make(map[string]string),
		members: make(map[string]models.Member),
		meals:   make(map[mealKey]models.MealEntry),
	}
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) CreateMess(ctx context.Context, mess *models.Mess) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codes[mess.Code]; taken {
		return &models.ConflictError{Resource: "mess", Err: fmt.Errorf("code %s already in use", mess.Code)}
	}
	if mess.ID == "" {
		mess.ID = uuid.New().String()
	}
	if mess.CreatedAt == 0 {
		mess.CreatedAt = time.Now().Unix()
	}
	s.messes[mess.ID] = *mess
	s.codes[mess.Code] = mess.ID
	return nil
}

func (s *Store) DeleteMess(ctx context.Context, messID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mess, ok := s.messes[messID]
	if !ok {
		return &models.NotFoundError{Kind: "mess", ID: messID}
	}
	delete(s.messes, messID)
	delete(s.codes, mess.Code)
	for user, m := range s.members {
		if m.MessID == messID {
			delete(s.members, user)
		}
	}
	for key := range s.meals {
		if key.messID == messID {
			delete(s.meals, key)
		}
	}
	s.deposits = slices.DeleteFunc(s.deposits, func(d models.DepositEntry) bool { return d.MessID == messID })
	s.costs = slices.DeleteFunc(s.costs, func(c models.CostEntry) bool { return c.MessID == messID })
	return nil
}

func (s *Store) GetMess(ctx context.Context, messID string) (*models.Mess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mess, ok := s.messes[messID]
	if !ok {
		return nil, &models.NotFoundError{Kind: "mess", ID: messID}
	}
	return &mess, nil
}

func (s *Store) GetMessByCode(ctx context.Context, code string) (*models.Mess, error) {
	s.mu.RLock()
	id, ok := s.codes[code]
	s.mu.RUnlock()
	if !ok {
		return nil, &models.NotFoundError{Kind: "mess", ID: code}
	}
	return s.GetMess(ctx, id)
}

func (s *Store) AddMember(ctx context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messes[member.MessID]; !ok {
		return &models.NotFoundError{Kind: "mess", ID: member.MessID}
	}
	if _, ok := s.members[member.UserID]; ok {
		return &models.ConflictError{Resource: "member", Err: fmt.Errorf("user %s already belongs to a mess", member.UserID)}
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	s.members[member.UserID] = *member
	return nil
}

func (s *Store) RemoveMember(ctx context.Context, messID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[userID]
	if !ok || m.MessID != messID {
		return &models.NotFoundError{Kind: "member", ID: userID}
	}
	delete(s.members, userID)
	return nil
}

func (s *Store) GetMembership(ctx context.Context, userID string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[userID]
	if !ok {
		return nil, &models.NotFoundError{Kind: "member", ID: userID}
	}
	return &m, nil
}

func (s *Store) ListMembers(ctx context.Context, messID string) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []models.Member
	for _, m := range s.members {
		if m.MessID == messID {
			members = append(members, m)
		}
	}
	slices.SortFunc(members, func(a, b models.Member) int {
		return cmp.Or(cmp.Compare(a.JoinedAt, b.JoinedAt), cmp.Compare(a.UserID, b.UserID))
	})
	return members, nil
}

func (s *Store) UpsertMeal(ctx context.Context, entry *models.MealEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := mealKey{messID: entry.MessID, userID: entry.UserID, date: entry.Date.String()}
	if existing, ok := s.meals[key]; ok {
		entry.ID = existing.ID
	} else {
		entry.ID = uuid.New().String()
	}
	s.meals[key] = *entry
	return entry.ID, nil
}

func (s *Store) GetMeal(ctx context.Context, messID, userID string, date models.Date) (*models.MealEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meals[mealKey{messID: messID, userID: userID, date: date.String()}]
	if !ok {
		return nil, &models.NotFoundError{Kind: "meal", ID: fmt.Sprintf("%s/%s", userID, date)}
	}
	return &m, nil
}

// ListMeals copies matching entries under the read lock when ranged, then yields them.
func (s *Store) ListMeals(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error] {
	return func(yield func(models.MealEntry, error) bool) {
		s.mu.RLock()
		var out []models.MealEntry
		for _, m := range s.meals {
			if m.MessID == messID && period.Contains(m.Date) {
				out = append(out, m)
			}
		}
		s.mu.RUnlock()

		slices.SortFunc(out, func(a, b models.MealEntry) int {
			return cmp.Or(a.Date.Compare(b.Date.Time), cmp.Compare(a.UserID, b.UserID))
		})
		yieldAll(ctx, out, yield)
	}
}

func (s *Store) AppendDeposit(ctx context.Context, entry *models.DepositEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.New().String()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	s.deposits = append(s.deposits, *entry)
	return entry.ID, nil
}

func (s *Store) ListDeposits(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error] {
	return func(yield func(models.DepositEntry, error) bool) {
		s.mu.RLock()
		out := inPeriod(s.deposits, period, func(d models.DepositEntry) (string, models.Date) { return d.MessID, d.Date }, messID)
		s.mu.RUnlock()
		yieldAll(ctx, out, yield)
	}
}

func (s *Store) AppendCost(ctx context.Context, entry *models.CostEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.New().String()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	s.costs = append(s.costs, *entry)
	return entry.ID, nil
}

func (s *Store) ListCosts(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error] {
	return func(yield func(models.CostEntry, error) bool) {
		s.mu.RLock()
		out := inPeriod(s.costs, period, func(c models.CostEntry) (string, models.Date) { return c.MessID, c.Date }, messID)
		s.mu.RUnlock()
		yieldAll(ctx, out, yield)
	}
}

// inPeriod filters append-only entries and orders them by date. The stable sort
// keeps insertion order within a day.
func inPeriod[T any](entries []T, period models.Period, key func(T) (string, models.Date), messID string) []T {
	var out []T
	for _, e := range entries {
		id, date := key(e)
		if id == messID && period.Contains(date) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		_, da := key(a)
		_, db := key(b)
		return da.Compare(db.Time)
	})
	return out
}

func yieldAll[T any](ctx context.Context, items []T, yield func(T, error) bool) {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			var zero T
			yield(zero, err)
			return
		}
		if !yield(item, nil) {
			return
		}
	}
}
