//go:build integration

package redis_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"steward/internal/tablefilter/models"
	tfredis "steward/internal/tablefilter/store/redis"
	id "steward/pkg/domain"
	"steward/pkg/platform/sentinel"
	"steward/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *tfredis.Store

	tenantID id.TenantID
	userID   id.UserID
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = tfredis.New(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.tenantID = id.TenantID(uuid.New())
	s.userID = id.UserID(uuid.New())
}

func (s *RedisStoreSuite) newFilter(tableType, name string) models.Filter {
	return models.Filter{
		ID:            uuid.New(),
		TableType:     tableType,
		Name:          name,
		Configuration: json.RawMessage(`{"column":"status","value":"active"}`),
	}
}

func (s *RedisStoreSuite) TestSaveAndList() {
	ctx := context.Background()

	f1 := s.newFilter("users", "Active only")
	f2 := s.newFilter("users", "Deactivated only")
	s.Require().NoError(s.store.Save(ctx, s.tenantID, s.userID, f1))
	s.Require().NoError(s.store.Save(ctx, s.tenantID, s.userID, f2))

	filters, err := s.store.List(ctx, s.tenantID, s.userID, "users")
	s.Require().NoError(err)
	s.Len(filters, 2)

	names := []string{filters[0].Name, filters[1].Name}
	s.ElementsMatch([]string{"Active only", "Deactivated only"}, names)
}

func (s *RedisStoreSuite) TestFiltersAreScopedByTableAndUser() {
	ctx := context.Background()

	s.Require().NoError(s.store.Save(ctx, s.tenantID, s.userID, s.newFilter("users", "Mine")))

	filters, err := s.store.List(ctx, s.tenantID, s.userID, "departments")
	s.Require().NoError(err)
	s.Empty(filters)

	otherUser := id.UserID(uuid.New())
	filters, err = s.store.List(ctx, s.tenantID, otherUser, "users")
	s.Require().NoError(err)
	s.Empty(filters)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()

	f := s.newFilter("users", "Active only")
	s.Require().NoError(s.store.Save(ctx, s.tenantID, s.userID, f))

	s.Require().NoError(s.store.Delete(ctx, s.tenantID, s.userID, "users", f.ID))

	filters, err := s.store.List(ctx, s.tenantID, s.userID, "users")
	s.Require().NoError(err)
	s.Empty(filters)

	err = s.store.Delete(ctx, s.tenantID, s.userID, "users", f.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
