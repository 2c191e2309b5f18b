// Package requesttime stamps each request with a single timestamp. Every
// envelope written during the request carries the same OccurredAt, and tests
// can pin the clock through requestcontext instead of a middleware chain.
package requesttime

import (
	"net/http"
	"time"

	"steward/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
