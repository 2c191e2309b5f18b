// Package postgres implements the activity store over a PostgreSQL
// activity_logs table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"steward/internal/activity"
	id "steward/pkg/domain"
	txcontext "steward/pkg/platform/tx"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execer routes through the ambient transaction when one is in scope, so
// envelope appends commit or roll back with the mutation that produced them.
func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) Append(ctx context.Context, env activity.Envelope) error {
	query := `
		INSERT INTO activity_logs (entity_type, entity_id, tenant_id, occurred_at, kind, version, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		string(env.EntityType),
		env.EntityID,
		uuid.UUID(env.TenantID),
		env.OccurredAt,
		string(env.Kind),
		env.Version,
		[]byte(env.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (s *Store) CountByEntity(ctx context.Context, entityType activity.EntityType, entityID uuid.UUID, tenantID id.TenantID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM activity_logs
		WHERE entity_type = $1 AND entity_id = $2 AND tenant_id = $3
	`
	var count int
	err := s.execer(ctx).QueryRowContext(ctx, query, string(entityType), entityID, uuid.UUID(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return count, nil
}

// ListByEntity orders by occurred_at descending with the serial id breaking
// ties, so simultaneous writes keep insertion order, newest first.
func (s *Store) ListByEntity(ctx context.Context, entityType activity.EntityType, entityID uuid.UUID, tenantID id.TenantID, offset, limit int) ([]activity.Envelope, error) {
	query := `
		SELECT entity_type, entity_id, tenant_id, occurred_at, kind, version, payload
		FROM activity_logs
		WHERE entity_type = $1 AND entity_id = $2 AND tenant_id = $3
		ORDER BY occurred_at DESC, id DESC
		OFFSET $4 LIMIT $5
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, string(entityType), entityID, uuid.UUID(tenantID), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var envelopes []activity.Envelope
	for rows.Next() {
		var (
			env      activity.Envelope
			et, kind string
			tenantID uuid.UUID
			payload  []byte
		)
		if err := rows.Scan(&et, &env.EntityID, &tenantID, &env.OccurredAt, &kind, &env.Version, &payload); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		env.EntityType = activity.EntityType(et)
		env.TenantID = id.TenantID(tenantID)
		env.Kind = activity.Kind(kind)
		env.Payload = payload
		envelopes = append(envelopes, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}
	return envelopes, nil
}
