package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"steward/internal/activity/metrics"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/requestcontext"
)

// Stamp is the actor/time snapshot embedded in every event payload. It
// freezes who performed the mutation, under what roles, and when, as of the
// moment of the write; later changes to the user record never rewrite
// history.
type Stamp struct {
	ActorID       string    `json:"actorId"`
	ActorFullName string    `json:"actorFullName"`
	ActorRoles    []string  `json:"actorRoles"`
	Date          time.Time `json:"date"`
}

// StampFromContext builds a Stamp from the request-scoped actor and clock.
func StampFromContext(ctx context.Context) Stamp {
	actor := requestcontext.CurrentActor(ctx)
	return Stamp{
		ActorID:       actor.ID.String(),
		ActorFullName: actor.FullName,
		ActorRoles:    actor.Roles,
		Date:          requestcontext.Now(ctx),
	}
}

// UpdateDiff captures the before/after snapshots of an update, both projected
// to the update DTO shape. The snapshots are serialized at capture time so
// the audit payload stays decoupled from the entity's persisted form.
type UpdateDiff struct {
	PreviousValues json.RawMessage `json:"previousValues"`
	CurrentValues  json.RawMessage `json:"currentValues"`
}

// NewUpdateDiff serializes the before/after DTOs. A serialization failure
// must abort the surrounding mutation: the state change and its audit record
// are recorded atomically or not at all.
func NewUpdateDiff(before, after any) (UpdateDiff, error) {
	prev, err := json.Marshal(before)
	if err != nil {
		return UpdateDiff{}, dErrors.Wrap(err, dErrors.CodeInternal, "serialize previous values")
	}
	cur, err := json.Marshal(after)
	if err != nil {
		return UpdateDiff{}, dErrors.Wrap(err, dErrors.CodeInternal, "serialize current values")
	}
	return UpdateDiff{PreviousValues: prev, CurrentValues: cur}, nil
}

// Recorder appends envelopes on behalf of entity services. It stamps
// OccurredAt from the request clock and tenant scope from the request
// context, never from client input.
type Recorder struct {
	store   Store
	metrics *metrics.Metrics
}

type RecorderOption func(*Recorder)

func WithRecorderMetrics(m *metrics.Metrics) RecorderOption {
	return func(r *Recorder) { r.metrics = m }
}

func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record serializes the event payload, wraps it in an envelope, and appends
// it within the caller's unit of work. Serialization failure fails the
// mutation.
func (r *Recorder) Record(ctx context.Context, entityType EntityType, entityID uuid.UUID, kind Kind, version uint32, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "serialize activity event")
	}
	env := Envelope{
		EntityType: entityType,
		EntityID:   entityID,
		TenantID:   requestcontext.TenantID(ctx),
		OccurredAt: requestcontext.Now(ctx),
		Kind:       kind,
		Version:    version,
		Payload:    raw,
	}
	if err := r.store.Append(ctx, env); err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.IncrementEnvelopesRecorded(string(kind))
	}
	return nil
}
