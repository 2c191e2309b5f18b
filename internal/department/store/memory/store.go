// Package memory is the in-memory department store.
package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/department/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu          sync.RWMutex
	departments map[id.DepartmentID]models.Department
}

func NewStore() *Store {
	return &Store{departments: make(map[id.DepartmentID]models.Department)}
}

func (s *Store) Seed(departments ...models.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range departments {
		s.departments[d.ID] = d
	}
}

func (s *Store) FindByID(_ context.Context, departmentID id.DepartmentID, tenantID id.TenantID) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.departments[departmentID]
	if !ok || d.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Department, 0)
	for _, d := range s.departments {
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
func (s *Store) Update(ctx context.Context, department *models.Department) error {
	s.mu.RLock()
	_, ok := s.departments[department.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *department
	write := func() {
		s.mu.Lock()
		s.departments[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
