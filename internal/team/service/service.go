package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/export"
	"steward/internal/team/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, teamID id.TeamID, tenantID id.TenantID) (*models.Team, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
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

func (s *Service) List(ctx context.Context) ([]models.Team, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, teamID id.TeamID) (*models.Team, error) {
	team, err := s.store.FindByID(ctx, teamID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "team not found")
		}
		return nil, err
	}
	return team, nil
}

func (s *Service) Update(ctx context.Context, teamID id.TeamID, in models.UpdateTeamInput) (*models.Team, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(team.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	team.Apply(in)

	payload := teamUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityTeam, uuid.UUID(teamID), KindTeamUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, team)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "team update failed", "team_id", teamID, "error", err)
		}
		return nil, err
	}
	return team, nil
}

func (s *Service) GetActivity(ctx context.Context, teamID id.TeamID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityTeam, uuid.UUID(teamID), requestcontext.TenantID(ctx), page, pageSize)
}

func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	teams, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(teams))
	for _, d := range teams {
		rows = append(rows, []string{d.Name, d.Description, d.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Name", "Description", "Creation date"},
		Rows:   rows,
	}, nil
}
