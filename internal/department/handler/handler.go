// Package handler exposes department routes.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"steward/internal/activity"
	"steward/internal/department/models"
	"steward/internal/export"
	id "steward/pkg/domain"
	"steward/pkg/platform/httputil"
)

// Service defines the department operations the handler depends on.
type Service interface {
	List(ctx context.Context) ([]models.Department, error)
	Get(ctx context.Context, departmentID id.DepartmentID) (*models.Department, error)
	Update(ctx context.Context, departmentID id.DepartmentID, in models.UpdateDepartmentInput) (*models.Department, error)
	GetActivity(ctx context.Context, departmentID id.DepartmentID, page, pageSize int) (activity.Page, error)
	ExportTable(ctx context.Context) (export.Table, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Get("/activities", h.handleActivity)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	departmentID, err := id.ParseDepartmentID(chi.URLParam(r, "departmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	dept, err := h.service.Get(r.Context(), departmentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	departmentID, err := id.ParseDepartmentID(chi.URLParam(r, "departmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	in, ok := httputil.Decode[models.UpdateDepartmentInput](w, r, h.logger)
	if !ok {
		return
	}
	dept, err := h.service.Update(r.Context(), departmentID, in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	departmentID, err := id.ParseDepartmentID(chi.URLParam(r, "departmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.service.GetActivity(r.Context(), departmentID, page, pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	conv, err := export.NewConverter(format)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	table, err := h.service.ExportTable(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	data, err := conv.Convert(table.Header, table.Rows)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", conv.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="departments.`+conv.FileExtension()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
