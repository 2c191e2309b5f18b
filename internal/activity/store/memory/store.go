// Package memory provides an in-memory activity store for tests and local
// runs. It mirrors the transactional contract of the postgres store: appends
// made inside RunInTx are invisible until the function returns nil.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"steward/internal/activity"
	id "steward/pkg/domain"
	"steward/pkg/platform/memtx"
)

type row struct {
	env activity.Envelope
	seq uint64
}

type Store struct {
	mu   sync.RWMutex
	rows []row
	seq  uint64
}

func NewStore() *Store {
	return &Store{}
}

// Append records an envelope. Inside a unit of work the envelope is staged on
// the shared commit log; outside one it commits immediately.
func (s *Store) Append(ctx context.Context, env activity.Envelope) error {
	if tx, ok := memtx.From(ctx); ok {
		tx.OnCommit(func() { s.commit(env) })
		return nil
	}
	s.commit(env)
	return nil
}

// RunInTx executes fn with a shared commit log in scope. Writes staged on it
// by any participating memory store become visible only when fn returns nil;
// any error discards them all.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := memtx.From(ctx); ok {
		return fn(ctx)
	}
	ctx, tx := memtx.With(ctx)
	if err := fn(ctx); err != nil {
		return err
	}
	tx.Commit()
	return nil
}

func (s *Store) commit(env activity.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.rows = append(s.rows, row{env: env, seq: s.seq})
}

func (s *Store) CountByEntity(_ context.Context, entityType activity.EntityType, entityID uuid.UUID, tenantID id.TenantID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.rows {
		if matches(r.env, entityType, entityID, tenantID) {
			count++
		}
	}
	return count, nil
}

// ListByEntity returns envelopes ordered by OccurredAt descending; equal
// timestamps break ties by insertion order, newest first.
func (s *Store) ListByEntity(_ context.Context, entityType activity.EntityType, entityID uuid.UUID, tenantID id.TenantID, offset, limit int) ([]activity.Envelope, error) {
	s.mu.RLock()
	matched := make([]row, 0)
	for _, r := range s.rows {
		if matches(r.env, entityType, entityID, tenantID) {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].env.OccurredAt.Equal(matched[j].env.OccurredAt) {
			return matched[i].seq > matched[j].seq
		}
		return matched[i].env.OccurredAt.After(matched[j].env.OccurredAt)
	})

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]activity.Envelope, 0, end-offset)
	for _, r := range matched[offset:end] {
		out = append(out, r.env)
	}
	return out, nil
}

func matches(env activity.Envelope, entityType activity.EntityType, entityID uuid.UUID, tenantID id.TenantID) bool {
	return env.EntityType == entityType && env.EntityID == entityID && env.TenantID == tenantID
}
