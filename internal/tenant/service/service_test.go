package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"steward/internal/activity"
	activitymemory "steward/internal/activity/store/memory"
	"steward/internal/tenant/models"
	tenantmemory "steward/internal/tenant/store/memory"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *tenantmemory.Store
	service *Service
	ctx     context.Context
	now     time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.store = tenantmemory.NewStore()
	activityStore := activitymemory.NewStore()

	registry, err := activity.NewRegistry(Decoders())
	s.Require().NoError(err)

	s.service = New(s.store, activity.NewRecorder(activityStore), activity.NewReader(activityStore, registry), activityStore)

	s.now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithActor(context.Background(), requestcontext.Actor{
		ID:       id.UserID(uuid.New()),
		FullName: "Sam Admin",
		Roles:    []string{"Super admin"},
	})
	s.ctx = requestcontext.WithTime(ctx, s.now)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) seedTenant(name string) models.Tenant {
	t := models.Tenant{ID: id.TenantID(uuid.New()), Name: name, CreatedAt: s.now.Add(-time.Hour)}
	s.store.Seed(t)
	return t
}

func (s *ServiceSuite) TestUpdate() {
	tenant := s.seedTenant("Acme")

	updated, err := s.service.Update(s.ctx, tenant.ID, models.UpdateTenantInput{Name: "Acme Corp"})
	s.Require().NoError(err)
	s.Equal("Acme Corp", updated.Name)

	page, err := s.service.GetActivity(s.ctx, tenant.ID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("Tenant details updated", page.Items[0].Message)
	s.Equal("Sam Admin", page.Items[0].ActorFullName)
}

func (s *ServiceSuite) TestEnterAndExit() {
	tenant := s.seedTenant("Globex")

	s.Require().NoError(s.service.Enter(s.ctx, tenant.ID))
	s.Require().NoError(s.service.Exit(s.ctx, tenant.ID))

	page, err := s.service.GetActivity(s.ctx, tenant.ID, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 2)
	s.Equal("Exited the tenant", page.Items[0].Message)
	s.Equal("Entered the tenant", page.Items[1].Message)
}

func (s *ServiceSuite) TestSwitchUnknownTenant() {
	err := s.service.Enter(s.ctx, id.TenantID(uuid.New()))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateValidation() {
	tenant := s.seedTenant("Initech")

	_, err := s.service.Update(s.ctx, tenant.ID, models.UpdateTenantInput{Name: " "})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}
