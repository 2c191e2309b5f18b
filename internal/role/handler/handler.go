package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"steward/internal/role/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/httputil"
	strutil "steward/pkg/platform/strings"
)

type Service interface {
	List(ctx context.Context) ([]models.Role, error)
	Get(ctx context.Context, roleID id.RoleID) (*models.Role, error)
	AssignedUsers(ctx context.Context, roleID id.RoleID) ([]id.UserID, error)
	AssignUsers(ctx context.Context, roleID id.RoleID, userIDs []id.UserID) error
	UnassignUsers(ctx context.Context, roleID id.RoleID, userIDs []id.UserID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/roles", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Route("/{roleID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Get("/users", h.handleAssignedUsers)
			r.Post("/users", h.handleAssign)
			r.Delete("/users", h.handleUnassign)
		})
	})
}

type changeAssignmentsRequest struct {
	UserIDs []string `json:"userIds"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	roleID, err := id.ParseRoleID(chi.URLParam(r, "roleID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	role, err := h.service.Get(r.Context(), roleID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) handleAssignedUsers(w http.ResponseWriter, r *http.Request) {
	roleID, err := id.ParseRoleID(chi.URLParam(r, "roleID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	users, err := h.service.AssignedUsers(r.Context(), roleID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	h.handleChange(w, r, h.service.AssignUsers)
}

func (h *Handler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	h.handleChange(w, r, h.service.UnassignUsers)
}

func (h *Handler) handleChange(w http.ResponseWriter, r *http.Request, op func(context.Context, id.RoleID, []id.UserID) error) {
	roleID, err := id.ParseRoleID(chi.URLParam(r, "roleID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.Decode[changeAssignmentsRequest](w, r, h.logger)
	if !ok {
		return
	}
	// Repeated IDs in the request would otherwise record duplicate events.
	raws := strutil.DedupeAndTrim(req.UserIDs)
	userIDs := make([]id.UserID, 0, len(raws))
	for _, raw := range raws {
		userID, err := id.ParseUserID(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "invalid user id %q", raw))
			return
		}
		userIDs = append(userIDs, userID)
	}
	if err := op(r.Context(), roleID, userIDs); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
