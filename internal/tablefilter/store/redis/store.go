// Package redis stores saved table filters in Redis hashes, one hash per
// (tenant, user, table) triple.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"steward/internal/tablefilter/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/sentinel"
)

const keyPrefix = "tablefilter:"

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(tenantID id.TenantID, userID id.UserID, tableType string) string {
	return keyPrefix + tenantID.String() + ":" + userID.String() + ":" + tableType
}

func (s *Store) List(ctx context.Context, tenantID id.TenantID, userID id.UserID, tableType string) ([]models.Filter, error) {
	entries, err := s.client.HGetAll(ctx, key(tenantID, userID, tableType)).Result()
	if err != nil {
		return nil, fmt.Errorf("list table filters: %w", err)
	}
	filters := make([]models.Filter, 0, len(entries))
	for _, raw := range entries {
		var f models.Filter
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("decode table filter: %w", err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func (s *Store) Save(ctx context.Context, tenantID id.TenantID, userID id.UserID, filter models.Filter) error {
	raw, err := json.Marshal(filter)
	if err != nil {
		return fmt.Errorf("encode table filter: %w", err)
	}
	if err := s.client.HSet(ctx, key(tenantID, userID, filter.TableType), filter.ID.String(), raw).Err(); err != nil {
		return fmt.Errorf("save table filter: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, tenantID id.TenantID, userID id.UserID, tableType string, filterID uuid.UUID) error {
	removed, err := s.client.HDel(ctx, key(tenantID, userID, tableType), filterID.String()).Result()
	if err != nil {
		return fmt.Errorf("delete table filter: %w", err)
	}
	if removed == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
