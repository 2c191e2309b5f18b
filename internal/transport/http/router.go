// Package httptransport assembles the HTTP surface. Handlers stay thin;
// business rules live in the feature services.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"steward/pkg/platform/middleware/auth"
	"steward/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter mounts the admin API. Everything under /api requires a bearer
// token; health and metrics stay open for probes and scrapers.
func NewRouter(validator auth.Validator, logger *slog.Logger, exporter *Exporter, features ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, logger))
		for _, f := range features {
			f.Register(r)
		}
		if exporter != nil {
			r.Get("/export", exporter.handleExportAll)
		}
	})

	return r
}
