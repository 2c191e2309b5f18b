package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/division/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu        sync.RWMutex
	divisions map[id.DivisionID]models.Division
}

func NewStore() *Store {
	return &Store{divisions: make(map[id.DivisionID]models.Division)}
}

func (s *Store) Seed(divisions ...models.Division) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range divisions {
		s.divisions[d.ID] = d
	}
}

func (s *Store) FindByID(_ context.Context, divisionID id.DivisionID, tenantID id.TenantID) (*models.Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.divisions[divisionID]
	if !ok || d.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Division, 0)
	for _, d := range s.divisions {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update stages the write on the ambient commit log when one is in scope,
// so the change shares the unit of work's fate; otherwise it applies
// immediately.
func (s *Store) Update(ctx context.Context, division *models.Division) error {
	s.mu.RLock()
	_, ok := s.divisions[division.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *division
	write := func() {
		s.mu.Lock()
		s.divisions[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
