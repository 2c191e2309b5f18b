//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/export"
	"steward/internal/user/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	emailutil "steward/pkg/email"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
	"steward/pkg/secrets"
)

type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID, tenantID id.TenantID) (*models.User, error)
	FindByEmail(ctx context.Context, email string, tenantID id.TenantID) (*models.User, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// Service provisions and manages tenant users.
type Service struct {
	store    Store
	recorder *activity.Recorder
	reader   *activity.Reader
	uow      activity.UnitOfWork
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, recorder *activity.Recorder, reader *activity.Reader, uow activity.UnitOfWork, opts ...Option) *Service {
	s := &Service{store: store, recorder: recorder, reader: reader, uow: uow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.store.FindByID(ctx, userID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

// Create provisions a user with a generated password and records the
// creation and the credential delivery in the user's activity stream.
func (s *Service) Create(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID := requestcontext.TenantID(ctx)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.store.FindByEmail(ctx, email, tenantID); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "a user with this email already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}

	password, err := secrets.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := secrets.Hash(password)
	if err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		derivedFirst, derivedLast := emailutil.DeriveNameFromEmail(email)
		if firstName == "" {
			firstName = derivedFirst
		}
		if lastName == "" {
			lastName = derivedLast
		}
	}

	user := &models.User{
		ID:           id.UserID(uuid.New()),
		TenantID:     tenantID,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Status:       models.UserStatusActive,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}

	stamp := activity.StampFromContext(ctx)
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Create(txCtx, user); err != nil {
			return err
		}
		created := userCreatedV1{Stamp: stamp, Email: user.Email}
		if err := s.recorder.Record(txCtx, activity.EntityUser, uuid.UUID(user.ID), KindUserCreated, 1, created); err != nil {
			return err
		}
		sent := userCredentialsSentV1{Stamp: stamp, Email: user.Email}
		return s.recorder.Record(txCtx, activity.EntityUser, uuid.UUID(user.ID), KindUserCredentialsSent, 1, sent)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "user creation failed", "email", email, "error", err)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, userID id.UserID, in models.UpdateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(user.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	user.Apply(in)

	payload := userUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityUser, uuid.UUID(userID), KindUserUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate suspends the user. Deactivating an already suspended user is an
// invariant violation, not a no-op, so repeated clicks surface a conflict.
func (s *Service) Deactivate(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.setStatus(ctx, userID, models.UserStatusDeactivated, KindUserDeactivated)
}

func (s *Service) Reactivate(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.setStatus(ctx, userID, models.UserStatusActive, KindUserReactivated)
}

func (s *Service) setStatus(ctx context.Context, userID id.UserID, status models.UserStatus, kind activity.Kind) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "user is already %s", status)
	}
	user.Status = status

	payload := userStatusV1{Stamp: activity.StampFromContext(ctx)}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityUser, uuid.UUID(userID), kind, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetActivity(ctx context.Context, userID id.UserID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityUser, uuid.UUID(userID), requestcontext.TenantID(ctx), page, pageSize)
}

func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	users, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Email, u.FirstName, u.LastName, string(u.Status), u.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Email", "First name", "Last name", "Status", "Creation date"},
		Rows:   rows,
	}, nil
}
