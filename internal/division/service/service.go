package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/division/models"
	"steward/internal/export"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, divisionID id.DivisionID, tenantID id.TenantID) (*models.Division, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.Division, error)
	Update(ctx context.Context, division *models.Division) error
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

func (s *Service) List(ctx context.Context) ([]models.Division, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, divisionID id.DivisionID) (*models.Division, error) {
	division, err := s.store.FindByID(ctx, divisionID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "division not found")
		}
		return nil, err
	}
	return division, nil
}

func (s *Service) Update(ctx context.Context, divisionID id.DivisionID, in models.UpdateDivisionInput) (*models.Division, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	division, err := s.Get(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(division.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	division.Apply(in)

	payload := divisionUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityDivision, uuid.UUID(divisionID), KindDivisionUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, division)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "division update failed", "division_id", divisionID, "error", err)
		}
		return nil, err
	}
	return division, nil
}

func (s *Service) GetActivity(ctx context.Context, divisionID id.DivisionID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, divisionID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityDivision, uuid.UUID(divisionID), requestcontext.TenantID(ctx), page, pageSize)
}

func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	divisions, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(divisions))
	for _, d := range divisions {
		rows = append(rows, []string{d.Name, d.Description, d.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Name", "Description", "Creation date"},
		Rows:   rows,
	}, nil
}
