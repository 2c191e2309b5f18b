//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"steward/internal/activity"
	"steward/internal/activity/store/postgres"
	id "steward/pkg/domain"
	"steward/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
	uow   *postgres.UnitOfWork
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = postgres.New(s.pg.DB)
	s.uow = postgres.NewUnitOfWork(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background()))
}

func newEnvelope(entityID uuid.UUID, tenantID id.TenantID, kind activity.Kind, at time.Time) activity.Envelope {
	return activity.Envelope{
		EntityType: activity.EntityDepartment,
		EntityID:   entityID,
		TenantID:   tenantID,
		OccurredAt: at,
		Kind:       kind,
		Version:    1,
		Payload:    json.RawMessage(`{"actorId":"` + uuid.NewString() + `"}`),
	}
}

func (s *PostgresStoreSuite) TestAppendAndListOrdering() {
	ctx := context.Background()
	entityID := uuid.New()
	tenantID := id.TenantID(uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	// Insert out of chronological order.
	for _, offset := range []time.Duration{time.Minute, 0, 2 * time.Minute} {
		env := newEnvelope(entityID, tenantID, "department_updated", base.Add(offset))
		s.Require().NoError(s.store.Append(ctx, env))
	}

	count, err := s.store.CountByEntity(ctx, activity.EntityDepartment, entityID, tenantID)
	s.Require().NoError(err)
	s.Equal(3, count)

	envs, err := s.store.ListByEntity(ctx, activity.EntityDepartment, entityID, tenantID, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(envs, 3)
	s.Equal(base.Add(2*time.Minute), envs[0].OccurredAt.UTC())
	s.Equal(base.Add(time.Minute), envs[1].OccurredAt.UTC())
	s.Equal(base, envs[2].OccurredAt.UTC())
}

func (s *PostgresStoreSuite) TestSimultaneousTimestampsKeepInsertionOrder() {
	ctx := context.Background()
	entityID := uuid.New()
	tenantID := id.TenantID(uuid.New())
	at := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, newEnvelope(entityID, tenantID, "first", at)))
	s.Require().NoError(s.store.Append(ctx, newEnvelope(entityID, tenantID, "second", at)))

	envs, err := s.store.ListByEntity(ctx, activity.EntityDepartment, entityID, tenantID, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(envs, 2)
	s.Equal(activity.Kind("second"), envs[0].Kind)
	s.Equal(activity.Kind("first"), envs[1].Kind)
}

func (s *PostgresStoreSuite) TestOffsetAndLimit() {
	ctx := context.Background()
	entityID := uuid.New()
	tenantID := id.TenantID(uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 5; i++ {
		env := newEnvelope(entityID, tenantID, "department_updated", base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(s.store.Append(ctx, env))
	}

	envs, err := s.store.ListByEntity(ctx, activity.EntityDepartment, entityID, tenantID, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(envs, 2)
	s.Equal(base.Add(2*time.Second), envs[0].OccurredAt.UTC())
	s.Equal(base.Add(time.Second), envs[1].OccurredAt.UTC())
}

func (s *PostgresStoreSuite) TestTenantIsolation() {
	ctx := context.Background()
	entityID := uuid.New()
	tenantA := id.TenantID(uuid.New())
	tenantB := id.TenantID(uuid.New())

	env := newEnvelope(entityID, tenantA, "department_updated", time.Now().UTC())
	s.Require().NoError(s.store.Append(ctx, env))

	count, err := s.store.CountByEntity(ctx, activity.EntityDepartment, entityID, tenantB)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *PostgresStoreSuite) TestRollbackDiscardsAppends() {
	ctx := context.Background()
	entityID := uuid.New()
	tenantID := id.TenantID(uuid.New())
	boom := errors.New("mutation failed")

	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		env := newEnvelope(entityID, tenantID, "department_updated", time.Now().UTC())
		if err := s.store.Append(ctx, env); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	count, err := s.store.CountByEntity(ctx, activity.EntityDepartment, entityID, tenantID)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *PostgresStoreSuite) TestCommitMakesAppendsVisible() {
	ctx := context.Background()
	entityID := uuid.New()
	tenantID := id.TenantID(uuid.New())

	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		for i := 0; i < 2; i++ {
			env := newEnvelope(entityID, tenantID, "department_updated", time.Now().UTC())
			if err := s.store.Append(ctx, env); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)

	count, err := s.store.CountByEntity(ctx, activity.EntityDepartment, entityID, tenantID)
	s.Require().NoError(err)
	s.Equal(2, count)
}
