package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"steward/internal/tablefilter/models"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context, tableType string) ([]models.Filter, error)
	Create(ctx context.Context, in models.CreateFilterInput) (*models.Filter, error)
	Delete(ctx context.Context, tableType string, filterID uuid.UUID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/table-filters", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Delete("/{filterID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tableType := r.URL.Query().Get("tableType")
	if tableType == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tableType query parameter is required"))
		return
	}
	filters, err := h.service.List(r.Context(), tableType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, filters)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[models.CreateFilterInput](w, r, h.logger)
	if !ok {
		return
	}
	filter, err := h.service.Create(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, filter)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	filterID, err := uuid.Parse(chi.URLParam(r, "filterID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid filter id"))
		return
	}
	tableType := r.URL.Query().Get("tableType")
	if tableType == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tableType query parameter is required"))
		return
	}
	if err := h.service.Delete(r.Context(), tableType, filterID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
