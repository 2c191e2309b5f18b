//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"steward/internal/activity"
	"steward/internal/department/models"
	"steward/internal/export"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, departmentID id.DepartmentID, tenantID id.TenantID) (*models.Department, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.Department, error)
	Update(ctx context.Context, department *models.Department) error
}

// Service orchestrates department reads, updates, and activity history.
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

func (s *Service) List(ctx context.Context) ([]models.Department, error) {
	return s.store.ListByTenant(ctx, requestcontext.TenantID(ctx))
}

func (s *Service) Get(ctx context.Context, departmentID id.DepartmentID) (*models.Department, error) {
	dept, err := s.store.FindByID(ctx, departmentID, requestcontext.TenantID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "department not found")
		}
		return nil, err
	}
	return dept, nil
}

// Update applies the submitted fields and records a department_updated
// envelope in the same unit of work. A diff-capture failure aborts the
// update before any state changes.
func (s *Service) Update(ctx context.Context, departmentID id.DepartmentID, in models.UpdateDepartmentInput) (*models.Department, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.Get(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	diff, err := activity.NewUpdateDiff(dept.Snapshot(), in)
	if err != nil {
		return nil, err
	}
	dept.Apply(in)

	payload := departmentUpdatedV1{
		Stamp:      activity.StampFromContext(ctx),
		UpdateDiff: diff,
	}
	err = s.uow.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recorder.Record(txCtx, activity.EntityDepartment, uuid.UUID(departmentID), KindDepartmentUpdated, 1, payload); err != nil {
			return err
		}
		return s.store.Update(txCtx, dept)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "department update failed", "department_id", departmentID, "error", err)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "department updated", "department_id", departmentID)
	}
	return dept, nil
}

// GetActivity returns one page of the department's audit history. The
// existence check runs first so a foreign or unknown id reads as NotFound
// without scanning envelopes.
func (s *Service) GetActivity(ctx context.Context, departmentID id.DepartmentID, page, pageSize int) (activity.Page, error) {
	if _, err := s.Get(ctx, departmentID); err != nil {
		return activity.Page{}, err
	}
	return s.reader.GetPage(ctx, activity.EntityDepartment, uuid.UUID(departmentID), requestcontext.TenantID(ctx), page, pageSize)
}

// ExportTable projects the tenant's departments into an exportable table.
func (s *Service) ExportTable(ctx context.Context) (export.Table, error) {
	departments, err := s.List(ctx)
	if err != nil {
		return export.Table{}, err
	}
	rows := make([][]string, 0, len(departments))
	for _, d := range departments {
		division := ""
		if d.DivisionID != nil {
			division = d.DivisionID.String()
		}
		rows = append(rows, []string{d.Name, d.Description, division, d.CreatedAt.Format("2006-01-02")})
	}
	return export.Table{
		Header: []string{"Name", "Description", "Division", "Creation date"},
		Rows:   rows,
	}, nil
}
