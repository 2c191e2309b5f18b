package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/internal/activity"
	"steward/internal/activity/store/memory"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/requestcontext"
)

func recorderContext(tenantID id.TenantID, at time.Time) context.Context {
	ctx := context.Background()
	ctx = requestcontext.WithActor(ctx, requestcontext.Actor{
		ID:       id.UserID(uuid.New()),
		FullName: "Grace Hopper",
		Roles:    []string{"Admin"},
	})
	ctx = requestcontext.WithTenantID(ctx, tenantID)
	return requestcontext.WithTime(ctx, at)
}

func TestRecorderRecord(t *testing.T) {
	tenantID := id.TenantID(uuid.New())
	entityID := uuid.New()
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	ctx := recorderContext(tenantID, at)

	store := memory.NewStore()
	recorder := activity.NewRecorder(store)

	stamp := activity.StampFromContext(ctx)
	require.NoError(t, recorder.Record(ctx, activity.EntityTeam, entityID, "team_updated", 1, stamp))

	envs, err := store.ListByEntity(ctx, activity.EntityTeam, entityID, tenantID, 0, 10)
	require.NoError(t, err)
	require.Len(t, envs, 1)

	env := envs[0]
	assert.Equal(t, activity.EntityTeam, env.EntityType)
	assert.Equal(t, entityID, env.EntityID)
	assert.Equal(t, tenantID, env.TenantID)
	assert.Equal(t, at, env.OccurredAt)
	assert.Equal(t, activity.Kind("team_updated"), env.Kind)
	assert.Equal(t, uint32(1), env.Version)

	var decoded activity.Stamp
	require.NoError(t, json.Unmarshal(env.Payload, &decoded))
	assert.Equal(t, "Grace Hopper", decoded.ActorFullName)
	assert.Equal(t, []string{"Admin"}, decoded.ActorRoles)
	assert.Equal(t, at, decoded.Date)
}

func TestRecorderSerializationFailureAbortsAppend(t *testing.T) {
	ctx := recorderContext(id.TenantID(uuid.New()), time.Now().UTC())
	store := memory.NewStore()
	recorder := activity.NewRecorder(store)

	err := recorder.Record(ctx, activity.EntityTeam, uuid.New(), "team_updated", 1, make(chan int))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	count, err := store.CountByEntity(ctx, activity.EntityTeam, uuid.Nil, id.TenantID{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewUpdateDiff(t *testing.T) {
	type dto struct {
		Name string `json:"name"`
	}

	diff, err := activity.NewUpdateDiff(dto{Name: "before"}, dto{Name: "after"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"before"}`, string(diff.PreviousValues))
	assert.JSONEq(t, `{"name":"after"}`, string(diff.CurrentValues))

	_, err = activity.NewUpdateDiff(make(chan int), dto{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestMemoryStoreStagesAppendsUntilCommit(t *testing.T) {
	tenantID := id.TenantID(uuid.New())
	entityID := uuid.New()
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	ctx := recorderContext(tenantID, at)

	store := memory.NewStore()
	recorder := activity.NewRecorder(store)

	t.Run("rolled back appends stay invisible", func(t *testing.T) {
		err := store.RunInTx(ctx, func(txCtx context.Context) error {
			if err := recorder.Record(txCtx, activity.EntityUser, entityID, "user_updated", 1, activity.StampFromContext(txCtx)); err != nil {
				return err
			}
			return errors.New("mutation failed")
		})
		require.Error(t, err)

		count, err := store.CountByEntity(ctx, activity.EntityUser, entityID, tenantID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("committed appends become visible together", func(t *testing.T) {
		err := store.RunInTx(ctx, func(txCtx context.Context) error {
			if err := recorder.Record(txCtx, activity.EntityUser, entityID, "user_updated", 1, activity.StampFromContext(txCtx)); err != nil {
				return err
			}
			return recorder.Record(txCtx, activity.EntityUser, entityID, "user_roles_assigned", 1, activity.StampFromContext(txCtx))
		})
		require.NoError(t, err)

		count, err := store.CountByEntity(ctx, activity.EntityUser, entityID, tenantID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
