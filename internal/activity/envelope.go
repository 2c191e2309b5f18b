// Package activity implements the versioned activity log shared by every
// managed entity family: an append-only envelope store, a registry of
// per-(kind, version) payload decoders, a mutation recorder that captures
// actor context and before/after diffs, and a paginated reader that turns
// stored envelopes back into display-ready activity items.
package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	id "steward/pkg/domain"
)

// EntityType names a managed entity family. Envelopes for different families
// share one store but never one activity stream.
type EntityType string

const (
	EntityDepartment  EntityType = "department"
	EntityDivision    EntityType = "division"
	EntityServiceArea EntityType = "service_area"
	EntityJobTitle    EntityType = "job_title"
	EntityTeam        EntityType = "team"
	EntityTenant      EntityType = "tenant"
	EntityUser        EntityType = "user"
)

// Kind identifies the business action an envelope records. Kinds form a
// closed set per entity family; the set only grows.
type Kind string

// Envelope is one immutable, persisted audit record. Once written it is
// never updated or deleted. The (Kind, Version) pair fixes the payload shape
// forever: incompatible payload changes ship under a new Version.
type Envelope struct {
	EntityType EntityType
	EntityID   uuid.UUID
	TenantID   id.TenantID
	OccurredAt time.Time
	Kind       Kind
	Version    uint32
	Payload    json.RawMessage
}

// Store is the append-only storage contract for envelopes.
//
// Append participates in the caller's unit of work: when the context carries
// a transaction (pkg/platform/tx for SQL, staging for in-memory), the
// envelope becomes visible if and only if that unit of work commits.
type Store interface {
	Append(ctx context.Context, env Envelope) error
	CountByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID, tenantID id.TenantID) (int, error)
	// ListByEntity returns envelopes for one entity in descending OccurredAt
	// order (ties broken by insertion order), applying offset/limit
	// storage-side so pages never materialize the full history.
	ListByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID, tenantID id.TenantID, offset, limit int) ([]Envelope, error)
}

// UnitOfWork runs fn atomically: every store mutation performed through the
// fn context commits together or not at all.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
