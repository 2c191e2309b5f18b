package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/export"
	"steward/internal/jobtitle/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, jobTitleID id.JobTitleID, tenantID id.TenantID) (*models.JobTitle, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.JobTitle, error)
	Update(ctx context.Context, jobTitle *models.JobTitle) error
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

func (s *Service) List(ctx context.Context) ([]models.JobTitle, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, jobTitleID id.JobTitleID) (*models.JobTitle, error) {
	jobTitle, err := s.store.FindByID(ctx, jobTitleID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "job title not found")
		}
		return nil, err
	}
	return jobTitle, nil
}

func (s *Service) Update(ctx context.Context, jobTitleID id.JobTitleID, in models.UpdateJobTitleInput) (*models.JobTitle, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	jobTitle, err := s.Get(ctx, jobTitleID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(jobTitle.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	jobTitle.Apply(in)

	payload := jobTitleUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityJobTitle, uuid.UUID(jobTitleID), KindJobTitleUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, jobTitle)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "job title update failed", "job_title_id", jobTitleID, "error", err)
		}
		return nil, err
	}
	return jobTitle, nil
}

func (s *Service) GetActivity(ctx context.Context, jobTitleID id.JobTitleID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, jobTitleID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityJobTitle, uuid.UUID(jobTitleID), requestcontext.TenantID(ctx), page, pageSize)
}

func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	jobTitles, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(jobTitles))
	for _, d := range jobTitles {
		rows = append(rows, []string{d.Name, d.Description, d.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Name", "Description", "Creation date"},
		Rows:   rows,
	}, nil
}
