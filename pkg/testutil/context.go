package testutil

import (
	"net/http"
	"time"

	id "steward/pkg/domain"
	"steward/pkg/requestcontext"
)

// WithActor stamps an actor onto the request context, simulating what the
// auth middleware does for authenticated requests.
func WithActor(req *http.Request, actor requestcontext.Actor) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// WithTenant scopes the request context to a tenant.
func WithTenant(req *http.Request, tenantID id.TenantID) *http.Request {
	return req.WithContext(requestcontext.WithTenantID(req.Context(), tenantID))
}

// WithRequestTime pins the request time used for activity timestamps.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
