package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"steward/internal/tablefilter/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/sentinel"
)

type bucket struct {
	tenantID  id.TenantID
	userID    id.UserID
	tableType string
}

type Store struct {
	mu      sync.RWMutex
	filters map[bucket]map[uuid.UUID]models.Filter
}

func NewStore() *Store {
	return &Store{filters: make(map[bucket]map[uuid.UUID]models.Filter)}
}

func (s *Store) List(_ context.Context, tenantID id.TenantID, userID id.UserID, tableType string) ([]models.Filter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Filter, 0)
	for _, f := range s.filters[bucket{tenantID, userID, tableType}] {
		out = append(out, f)
	}
	return out, nil
}

func (s *Store) Save(_ context.Context, tenantID id.TenantID, userID id.UserID, filter models.Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := bucket{tenantID, userID, filter.TableType}
	if s.filters[b] == nil {
		s.filters[b] = make(map[uuid.UUID]models.Filter)
	}
	s.filters[b][filter.ID] = filter
	return nil
}

func (s *Store) Delete(_ context.Context, tenantID id.TenantID, userID id.UserID, tableType string, filterID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := bucket{tenantID, userID, tableType}
	if _, ok := s.filters[b][filterID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.filters[b], filterID)
	return nil
}
