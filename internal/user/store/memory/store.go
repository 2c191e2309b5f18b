package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"steward/internal/user/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu    sync.RWMutex
	users map[id.UserID]models.User
}

func NewStore() *Store {
	return &Store{users: make(map[id.UserID]models.User)}
}

func (s *Store) Seed(users ...models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
}

// Create stages the insert on the ambient commit log when one is in scope,
// so an aborted unit of work leaves no user behind.
func (s *Store) Create(ctx context.Context, user *models.User) error {
	s.mu.RLock()
	_, exists := s.users[user.ID]
	s.mu.RUnlock()
	if exists {
		return sentinel.ErrConflict
	}

	created := *user
	write := func() {
		s.mu.Lock()
		s.users[created.ID] = created
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}

func (s *Store) FindByID(_ context.Context, userID id.UserID, tenantID id.TenantID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok || u.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := u
	return &copy, nil
}

func (s *Store) FindByEmail(_ context.Context, email string, tenantID id.TenantID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.TenantID == tenantID && strings.EqualFold(u.Email, email) {
			copy := u
			return &copy, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0)
	for _, u := range s.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Update stages the write on the ambient commit log when one is in scope,
// so the change shares the unit of work's fate; otherwise it applies
// immediately.
func (s *Store) Update(ctx context.Context, user *models.User) error {
	s.mu.RLock()
	_, ok := s.users[user.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *user
	write := func() {
		s.mu.Lock()
		s.users[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
