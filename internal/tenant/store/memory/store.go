package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/tenant/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]models.Tenant
}

func NewStore() *Store {
	return &Store{tenants: make(map[id.TenantID]models.Tenant)}
}

func (s *Store) Seed(tenants ...models.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tenants {
		s.tenants[t.ID] = t
	}
}

func (s *Store) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copy := t
	return &copy, nil
}

func (s *Store) List(_ context.Context) ([]models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update stages the write on the ambient commit log when one is in scope,
// so the change shares the unit of work's fate; otherwise it applies
// immediately.
func (s *Store) Update(ctx context.Context, tenant *models.Tenant) error {
	s.mu.RLock()
	_, ok := s.tenants[tenant.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *tenant
	write := func() {
		s.mu.Lock()
		s.tenants[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
