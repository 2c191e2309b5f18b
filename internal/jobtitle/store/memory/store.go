package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/jobtitle/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu        sync.RWMutex
	jobTitles map[id.JobTitleID]models.JobTitle
}

func NewStore() *Store {
	return &Store{jobTitles: make(map[id.JobTitleID]models.JobTitle)}
}

func (s *Store) Seed(jobTitles ...models.JobTitle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range jobTitles {
		s.jobTitles[d.ID] = d
	}
}

func (s *Store) FindByID(_ context.Context, jobTitleID id.JobTitleID, tenantID id.TenantID) (*models.JobTitle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.jobTitles[jobTitleID]
	if !ok || d.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.JobTitle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.JobTitle, 0)
	for _, d := range s.jobTitles {
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
func (s *Store) Update(ctx context.Context, jobTitle *models.JobTitle) error {
	s.mu.RLock()
	_, ok := s.jobTitles[jobTitle.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *jobTitle
	write := func() {
		s.mu.Lock()
		s.jobTitles[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
