// Package service manages roles and their user assignments. Assignment
// changes are audited on each affected user's stream.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/role/models"
	usermodels "steward/internal/user/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, roleID id.RoleID, tenantID id.TenantID) (*models.Role, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.Role, error)
	Assign(ctx context.Context, roleID id.RoleID, userID id.UserID) error
	Unassign(ctx context.Context, roleID id.RoleID, userID id.UserID) error
	ListAssignedUsers(ctx context.Context, roleID id.RoleID) ([]id.UserID, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID, tenantID id.TenantID) (*usermodels.User, error)
}

type Service struct {
	store    Store
	users    UserStore
	recorder *activity.Recorder
	uow      activity.UnitOfWork
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, users UserStore, recorder *activity.Recorder, uow activity.UnitOfWork, opts ...Option) *Service {
	s := &Service{store: store, users: users, recorder: recorder, uow: uow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]models.Role, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, roleID id.RoleID) (*models.Role, error) {
	role, err := s.store.FindByID(ctx, roleID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "role not found")
		}
		return nil, err
	}
	return role, nil
}

func (s *Service) AssignedUsers(ctx context.Context, roleID id.RoleID) ([]id.UserID, error) {
	if _, err := s.Get(ctx, roleID); err != nil {
		return nil, err
	}
	return s.store.ListAssignedUsers(ctx, roleID)
}

// AssignUsers adds each user to the role. Every user must exist in the
// caller's tenant; the whole call fails before any membership changes if one
// does not.
func (s *Service) AssignUsers(ctx context.Context, roleID id.RoleID, userIDs []id.UserID) error {
	return s.changeAssignments(ctx, roleID, userIDs, KindUserRolesAssigned, s.store.Assign)
}

// UnassignUsers removes each user from the role.
func (s *Service) UnassignUsers(ctx context.Context, roleID id.RoleID, userIDs []id.UserID) error {
	return s.changeAssignments(ctx, roleID, userIDs, KindUserRolesUnassigned, s.store.Unassign)
}

func (s *Service) changeAssignments(ctx context.Context, roleID id.RoleID, userIDs []id.UserID, kind activity.Kind, apply func(ctx context.Context, roleID id.RoleID, userID id.UserID) error) error {
	if len(userIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one user is required")
	}

	role, err := s.Get(ctx, roleID)
	if err != nil {
		return err
	}

	tenantID := requestcontext.TenantID(ctx)
	for _, userID := range userIDs {
		if _, err := s.users.FindByID(ctx, userID, tenantID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeNotFound, "user %s not found", userID)
			}
			return err
		}
	}

	payload := rolesChangedV1{
		Stamp: activity.StampFromContext(ctx),
		Roles: []string{role.Name},
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		for _, userID := range userIDs {
			if err := apply(txCtx, roleID, userID); err != nil {
				return err
			}
			if err := s.recorder.Record(txCtx, activity.EntityUser, uuid.UUID(userID), kind, 1, payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "role assignment change failed", "role_id", roleID, "kind", kind, "error", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "role assignments changed", "role_id", roleID, "kind", kind, "users", len(userIDs))
	}
	return nil
}
