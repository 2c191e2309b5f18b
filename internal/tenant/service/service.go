// Package service manages tenants and super-admin tenant switching.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/export"
	"steward/internal/tenant/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
}

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

func (s *Service) List(ctx context.Context) ([]models.Tenant, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, err
	}
	return tenant, nil
}

func (s *Service) Update(ctx context.Context, tenantID id.TenantID, in models.UpdateTenantInput) (*models.Tenant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenant, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(tenant.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	tenant.Apply(in)

	payload := tenantUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	// Tenant events live in the target tenant's own stream.
	scoped := requestcontext.WithTenantID(ctx, tenantID)
	err = s.uow.RunInTx(scoped, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityTenant, uuid.UUID(tenantID), KindTenantUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, tenant)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "tenant update failed", "tenant_id", tenantID, "error", err)
		}
		return nil, err
	}
	return tenant, nil
}

// Enter records a super admin switching into a tenant's context.
func (s *Service) Enter(ctx context.Context, tenantID id.TenantID) error {
	return s.recordSwitch(ctx, tenantID, KindTenantEntered)
}

// Exit records a super admin leaving a tenant's context.
func (s *Service) Exit(ctx context.Context, tenantID id.TenantID) error {
	return s.recordSwitch(ctx, tenantID, KindTenantExited)
}

func (s *Service) recordSwitch(ctx context.Context, tenantID id.TenantID, kind activity.Kind) error {
	if _, err := s.Get(ctx, tenantID); err != nil {
		return err
	}

	payload := tenantEnteredV1{Stamp: activity.StampFromContext(ctx)}
	scoped := requestcontext.WithTenantID(ctx, tenantID)
	err := s.uow.RunInTx(scoped, func(txCtx context.Context) error {
		return s.recorder.Record(txCtx, activity.EntityTenant, uuid.UUID(tenantID), kind, 1, payload)
	})
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "tenant switch recorded", "tenant_id", tenantID, "kind", kind)
	}
	return nil
}

func (s *Service) GetActivity(ctx context.Context, tenantID id.TenantID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, tenantID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityTenant, uuid.UUID(tenantID), tenantID, page, pageSize)
}

func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	tenants, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(tenants))
	for _, t := range tenants {
		rows = append(rows, []string{t.Name, t.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Name", "Creation date"},
		Rows:   rows,
	}, nil
}
