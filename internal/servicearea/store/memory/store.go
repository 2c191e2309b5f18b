package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/servicearea/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu        sync.RWMutex
	serviceAreas map[id.ServiceAreaID]models.ServiceArea
}

func NewStore() *Store {
	return &Store{serviceAreas: make(map[id.ServiceAreaID]models.ServiceArea)}
}

func (s *Store) Seed(serviceAreas ...models.ServiceArea) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range serviceAreas {
		s.serviceAreas[d.ID] = d
	}
}

func (s *Store) FindByID(_ context.Context, serviceAreaID id.ServiceAreaID, tenantID id.TenantID) (*models.ServiceArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.serviceAreas[serviceAreaID]
	if !ok || d.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.ServiceArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ServiceArea, 0)
	for _, d := range s.serviceAreas {
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
func (s *Store) Update(ctx context.Context, serviceArea *models.ServiceArea) error {
	s.mu.RLock()
	_, ok := s.serviceAreas[serviceArea.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *serviceArea
	write := func() {
		s.mu.Lock()
		s.serviceAreas[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
