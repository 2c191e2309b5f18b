// Package service manages per-user saved table filters.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/tablefilter/models"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

const maxFiltersPerTable = 10

type Store interface {
	List(ctx context.Context, tenantID id.TenantID, userID id.UserID, tableType string) ([]models.Filter, error)
	Save(ctx context.Context, tenantID id.TenantID, userID id.UserID, filter models.Filter) error
	Delete(ctx context.Context, tenantID id.TenantID, userID id.UserID, tableType string, filterID uuid.UUID) error
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, tableType string) ([]models.Filter, error) {
	actor := requestcontext.CurrentActor(ctx)
	return s.store.List(ctx, requestcontext.TenantID(ctx), actor.ID, tableType)
}

func (s *Service) Create(ctx context.Context, in models.CreateFilterInput) (*models.Filter, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.CurrentActor(ctx)
	tenantID := requestcontext.TenantID(ctx)

	existing, err := s.store.List(ctx, tenantID, actor.ID, in.TableType)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxFiltersPerTable {
		return nil, dErrors.Newf(dErrors.CodeConflict, "at most %d filters are allowed per table", maxFiltersPerTable)
	}
	for _, f := range existing {
		if f.Name == in.Name {
			return nil, dErrors.New(dErrors.CodeConflict, "a filter with this name already exists")
		}
	}

	filter := models.Filter{
		ID:            uuid.New(),
		TableType:     in.TableType,
		Name:          in.Name,
		Configuration: in.Configuration,
	}
	if err := s.store.Save(ctx, tenantID, actor.ID, filter); err != nil {
		return nil, err
	}
	return &filter, nil
}

func (s *Service) Delete(ctx context.Context, tableType string, filterID uuid.UUID) error {
	actor := requestcontext.CurrentActor(ctx)
	err := s.store.Delete(ctx, requestcontext.TenantID(ctx), actor.ID, tableType, filterID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "filter not found")
		}
		return err
	}
	return nil
}
