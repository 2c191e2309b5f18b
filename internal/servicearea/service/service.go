package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/export"
	"steward/internal/servicearea/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, serviceAreaID id.ServiceAreaID, tenantID id.TenantID) (*models.ServiceArea, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.ServiceArea, error)
	Update(ctx context.Context, serviceArea *models.ServiceArea) error
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

func (s *Service) List(ctx context.Context) ([]models.ServiceArea, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, serviceAreaID id.ServiceAreaID) (*models.ServiceArea, error) {
	serviceArea, err := s.store.FindByID(ctx, serviceAreaID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "service area not found")
		}
		return nil, err
	}
	return serviceArea, nil
}

func (s *Service) Update(ctx context.Context, serviceAreaID id.ServiceAreaID, in models.UpdateServiceAreaInput) (*models.ServiceArea, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	serviceArea, err := s.Get(ctx, serviceAreaID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(serviceArea.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	serviceArea.Apply(in)

	payload := serviceAreaUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityServiceArea, uuid.UUID(serviceAreaID), KindServiceAreaUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, serviceArea)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "service area update failed", "service_area_id", serviceAreaID, "error", err)
		}
		return nil, err
	}
	return serviceArea, nil
}

func (s *Service) GetActivity(ctx context.Context, serviceAreaID id.ServiceAreaID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, serviceAreaID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityServiceArea, uuid.UUID(serviceAreaID), requestcontext.TenantID(ctx), page, pageSize)
}

func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	serviceAreas, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(serviceAreas))
	for _, d := range serviceAreas {
		rows = append(rows, []string{d.Name, d.Description, d.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Name", "Description", "Creation date"},
		Rows:   rows,
	}, nil
}
