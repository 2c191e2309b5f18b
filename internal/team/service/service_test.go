package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/internal/activity"
	activitymemory "steward/internal/activity/store/memory"
	"steward/internal/team/models"
	teammemory "steward/internal/team/store/memory"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/requestcontext"
)

func newFixture(t *testing.T) (*Service, *teammemory.Store, context.Context, id.TenantID) {
	t.Helper()

	store := teammemory.NewStore()
	activityStore := activitymemory.NewStore()
	registry, err := activity.NewRegistry(Decoders())
	require.NoError(t, err)

	svc := New(store, activity.NewRecorder(activityStore), activity.NewReader(activityStore, registry), activityStore)

	tenantID := id.TenantID(uuid.New())
	ctx := requestcontext.WithActor(context.Background(), requestcontext.Actor{
		ID:       id.UserID(uuid.New()),
		FullName: "Grace Hopper",
		Roles:    []string{"Admin"},
	})
	ctx = requestcontext.WithTenantID(ctx, tenantID)
	ctx = requestcontext.WithTime(ctx, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return svc, store, ctx, tenantID
}

func TestUpdateRecordsActivity(t *testing.T) {
	svc, store, ctx, tenantID := newFixture(t)

	team := models.Team{
		ID:       id.TeamID(uuid.New()),
		TenantID: tenantID,
		Name:     "Platform",
	}
	store.Seed(team)

	updated, err := svc.Update(ctx, team.ID, models.UpdateTeamInput{Name: "Platform Engineering", Description: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineering", updated.Name)

	page, err := svc.GetActivity(ctx, team.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Team details updated", page.Items[0].Message)
	assert.Equal(t, "Grace Hopper", page.Items[0].ActorFullName)
}

func TestUpdateValidatesName(t *testing.T) {
	svc, _, ctx, _ := newFixture(t)

	_, err := svc.Update(ctx, id.TeamID(uuid.New()), models.UpdateTeamInput{Name: ""})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestGetActivityOutsideTenantIsNotFound(t *testing.T) {
	svc, store, ctx, _ := newFixture(t)

	foreign := models.Team{
		ID:       id.TeamID(uuid.New()),
		TenantID: id.TenantID(uuid.New()),
		Name:     "Foreign",
	}
	store.Seed(foreign)

	_, err := svc.GetActivity(ctx, foreign.ID, 1, 10)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
