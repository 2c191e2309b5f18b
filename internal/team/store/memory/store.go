package memory

import (
	"context"
	"sort"
	"sync"

	"steward/internal/team/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
	"steward/pkg/platform/sentinel"
)

type Store struct {
	mu        sync.RWMutex
	teams map[id.TeamID]models.Team
}

func NewStore() *Store {
	return &Store{teams: make(map[id.TeamID]models.Team)}
}

func (s *Store) Seed(teams ...models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range teams {
		s.teams[d.ID] = d
	}
}

func (s *Store) FindByID(_ context.Context, teamID id.TeamID, tenantID id.TenantID) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.teams[teamID]
	if !ok || d.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *Store) ListByTenant(_ context.Context, tenantID id.TenantID) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Team, 0)
	for _, d := range s.teams {
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
func (s *Store) Update(ctx context.Context, team *models.Team) error {
	s.mu.RLock()
	_, ok := s.teams[team.ID]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}

	updated := *team
	write := func() {
		s.mu.Lock()
		s.teams[updated.ID] = updated
		s.mu.Unlock()
	}
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(write)
		return nil
	}
	write()
	return nil
}
