package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"steward/internal/activity"
	activitymemory "steward/internal/activity/store/memory"
	"steward/internal/user/models"
	usermemory "steward/internal/user/store/memory"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/sentinel"
	"steward/pkg/requestcontext"
	"steward/pkg/secrets"
)

type ServiceSuite struct {
	suite.Suite
	store    *usermemory.Store
	service  *Service
	ctx      context.Context
	tenantID id.TenantID
	now      time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.store = usermemory.NewStore()
	activityStore := activitymemory.NewStore()

	registry, err := activity.NewRegistry(Decoders())
	s.Require().NoError(err)

	s.service = New(s.store, activity.NewRecorder(activityStore), activity.NewReader(activityStore, registry), activityStore)

	s.tenantID = id.TenantID(uuid.New())
	s.now = time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithActor(context.Background(), requestcontext.Actor{
		ID:       id.UserID(uuid.New()),
		FullName: "Sam Admin",
		Roles:    []string{"Admin"},
	})
	ctx = requestcontext.WithTenantID(ctx, s.tenantID)
	s.ctx = requestcontext.WithTime(ctx, s.now)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestCreate() {
	s.Run("provisions an active user with hashed credentials", func() {
		user, err := s.service.Create(s.ctx, models.CreateUserInput{
			Email:     "Jane.Doe@Example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		})
		s.Require().NoError(err)
		s.Equal("jane.doe@example.com", user.Email)
		s.Equal(models.UserStatusActive, user.Status)
		s.NotEmpty(user.PasswordHash)
		s.Error(secrets.Verify("not the password", user.PasswordHash))

		page, err := s.service.GetActivity(s.ctx, user.ID, 1, 10)
		s.Require().NoError(err)
		s.Require().Len(page.Items, 2)
		s.Equal("Credentials sent to jane.doe@example.com", page.Items[0].Message)
		s.Equal("User created with email jane.doe@example.com", page.Items[1].Message)
	})

	s.Run("derives missing names from the email local part", func() {
		user, err := s.service.Create(s.ctx, models.CreateUserInput{Email: "marta.kovacs@example.com"})
		s.Require().NoError(err)
		s.Equal("Marta", user.FirstName)
		s.Equal("Kovacs", user.LastName)
	})

	s.Run("rejects duplicate email within the tenant", func() {
		in := models.CreateUserInput{Email: "dup@example.com", FirstName: "A", LastName: "B"}
		_, err := s.service.Create(s.ctx, in)
		s.Require().NoError(err)

		_, err = s.service.Create(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects malformed email", func() {
		_, err := s.service.Create(s.ctx, models.CreateUserInput{Email: "nope", FirstName: "A", LastName: "B"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

type appendFailingStore struct {
	activity.Store
}

func (appendFailingStore) Append(context.Context, activity.Envelope) error {
	return errors.New("append failed")
}

func (s *ServiceSuite) TestFailedAppendLeavesNoUserBehind() {
	activityStore := activitymemory.NewStore()
	registry, err := activity.NewRegistry(Decoders())
	s.Require().NoError(err)

	recorder := activity.NewRecorder(appendFailingStore{Store: activityStore})
	svc := New(s.store, recorder, activity.NewReader(activityStore, registry), activityStore)

	_, err = svc.Create(s.ctx, models.CreateUserInput{
		Email:     "ghost@example.com",
		FirstName: "Gideon",
		LastName:  "Host",
	})
	s.Require().Error(err)

	// The staged insert must die with the unit of work.
	_, err = s.store.FindByEmail(context.Background(), "ghost@example.com", s.tenantID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestUpdate() {
	user, err := s.service.Create(s.ctx, models.CreateUserInput{Email: "u@example.com", FirstName: "Old", LastName: "Name"})
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, user.ID, models.UpdateUserInput{FirstName: "New", LastName: "Name"})
	s.Require().NoError(err)
	s.Equal("New Name", updated.FullName())

	page, err := s.service.GetActivity(s.ctx, user.ID, 1, 10)
	s.Require().NoError(err)
	s.Require().NotEmpty(page.Items)
	s.Equal("User details updated", page.Items[0].Message)
}

func (s *ServiceSuite) TestStatusTransitions() {
	user, err := s.service.Create(s.ctx, models.CreateUserInput{Email: "st@example.com", FirstName: "S", LastName: "T"})
	s.Require().NoError(err)

	s.Run("deactivate then reactivate", func() {
		deactivated, err := s.service.Deactivate(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(models.UserStatusDeactivated, deactivated.Status)

		reactivated, err := s.service.Reactivate(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(models.UserStatusActive, reactivated.Status)

		page, err := s.service.GetActivity(s.ctx, user.ID, 1, 10)
		s.Require().NoError(err)
		s.Require().True(len(page.Items) >= 2)
		s.Equal("User reactivated", page.Items[0].Message)
		s.Equal("User deactivated", page.Items[1].Message)
	})

	s.Run("reactivating an active user is rejected", func() {
		_, err := s.service.Reactivate(s.ctx, user.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *ServiceSuite) TestTenantIsolation() {
	user, err := s.service.Create(s.ctx, models.CreateUserInput{Email: "iso@example.com", FirstName: "I", LastName: "S"})
	s.Require().NoError(err)

	foreignCtx := requestcontext.WithTenantID(s.ctx, id.TenantID(uuid.New()))
	_, err = s.service.GetActivity(foreignCtx, user.ID, 1, 10)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
