package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"steward/internal/activity"
	"steward/internal/export"
	"steward/internal/team/models"
	id "steward/pkg/domain"
	"steward/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context) ([]models.Team, error)
	Get(ctx context.Context, teamID id.TeamID) (*models.Team, error)
	Update(ctx context.Context, teamID id.TeamID, in models.UpdateTeamInput) (*models.Team, error)
	GetActivity(ctx context.Context, teamID id.TeamID, page, pageSize int) (activity.Page, error)
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
	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
		r.Route("/{teamID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Get("/activities", h.handleActivity)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	teamID, err := id.ParseTeamID(chi.URLParam(r, "teamID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	team, err := h.service.Get(r.Context(), teamID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	teamID, err := id.ParseTeamID(chi.URLParam(r, "teamID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	in, ok := httputil.Decode[models.UpdateTeamInput](w, r, h.logger)
	if !ok {
		return
	}
	team, err := h.service.Update(r.Context(), teamID, in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	teamID, err := id.ParseTeamID(chi.URLParam(r, "teamID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.service.GetActivity(r.Context(), teamID, page, pageSize)
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
	w.Header().Set("Content-Disposition", `attachment; filename="teams.`+conv.FileExtension()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
