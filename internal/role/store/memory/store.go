package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/role/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu          sync.RWMutex
	roles       map[id.RoleID]models.Role
	assignments map[id.RoleID]map[id.UserID]struct{}
}

func NewStore() *Store {
	return &Store{
		roles:       make(map[id.RoleID]models.Role),
		assignments: make(map[id.RoleID]map[id.UserID]struct{}),
	}
}

func (s *Store) Seed(roles ...models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range roles {
		s.roles[r.ID] = r
	}
}

func (s *Store) FindByID(_ context.Context, roleID id.RoleID, tenantID id.TenantID) (*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[roleID]
	if !ok || r.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := r
	return &copy, nil
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Role, 0)
	for _, r := range s.roles {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Assign stages the membership write on the ambient commit log when one is in
// scope, so it shares the unit of work's fate.
func (s *Store) Assign(ctx context.Context, roleID id.RoleID, userID id.UserID) error {
	s.mu.RLock()
	_, ok := s.roles[roleID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	write := func() {
		s.mu.Lock()
		if s.assignments[roleID] == nil {
			s.assignments[roleID] = make(map[id.UserID]struct{})
		}
		s.assignments[roleID][userID] = struct{}{}
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}

func (s *Store) Unassign(ctx context.Context, roleID id.RoleID, userID id.UserID) error {
	s.mu.RLock()
	_, ok := s.assignments[roleID][userID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	write := func() {
		s.mu.Lock()
		delete(s.assignments[roleID], userID)
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}

func (s *Store) ListAssignedUsers(_ context.Context, roleID id.RoleID) ([]id.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]id.UserID, 0, len(s.assignments[roleID]))
	for userID := range s.assignments[roleID] {
		out = append(out, userID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}
