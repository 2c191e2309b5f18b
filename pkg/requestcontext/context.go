// Package requestcontext provides HTTP-independent accessors for
// request-scoped values: the acting user, their tenant, and the request time.
//
// Middleware sets these; services only read them. Keeping the package free of
// net/http lets services stay transport-agnostic, and lets tests inject an
// actor and a fixed clock without running a middleware chain:
//
//	ctx = requestcontext.WithActor(ctx, actor)
//	ctx = requestcontext.WithTenantID(ctx, tenantID)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "steward/pkg/domain"
)

// Actor identifies who is performing the current request. FullName and Roles
// are snapshotted into activity payloads at write time, so they reflect the
// actor as of the mutation even if the user record changes later.
type Actor struct {
	ID       id.UserID
	FullName string
	Roles    []string
}

type (
	actorKey       struct{}
	tenantIDKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// CurrentActor retrieves the acting user from the context.
// Returns the zero Actor if not set.
func CurrentActor(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok {
		return a
	}
	return Actor{}
}

// WithActor injects the acting user into the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// TenantID retrieves the caller's tenant scope from the context.
// Returns the zero value if not set.
func TenantID(ctx context.Context) id.TenantID {
	if t, ok := ctx.Value(tenantIDKey{}).(id.TenantID); ok {
		return t
	}
	return id.TenantID{}
}

// WithTenantID injects the caller's tenant scope into the context.
func WithTenantID(ctx context.Context, tenantID id.TenantID) context.Context {
	return context.WithValue(ctx, tenantIDKey{}, tenantID)
}

// RequestID retrieves the request correlation ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context. All writes within one
// request observe the same timestamp, and tests can pin the clock.
// Falls back to time.Now() for non-HTTP contexts (CLI, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
