package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/internal/tablefilter/models"
	"steward/internal/tablefilter/store/memory"
	id "steward/pkg/domain"
	dErrors "steward/pkg/domain-errors"
	"steward/pkg/requestcontext"
)

func newFixture() (*Service, context.Context) {
	svc := New(memory.NewStore())
	ctx := requestcontext.WithActor(context.Background(), requestcontext.Actor{ID: id.UserID(uuid.New())})
	ctx = requestcontext.WithTenantID(ctx, id.TenantID(uuid.New()))
	return svc, ctx
}

func TestCreateAndList(t *testing.T) {
	svc, ctx := newFixture()

	created, err := svc.Create(ctx, models.CreateFilterInput{
		TableType:     "users",
		Name:          "Active only",
		Configuration: json.RawMessage(`{"status":"active"}`),
	})
	require.NoError(t, err)

	filters, err := svc.List(ctx, "users")
	require.NoError(t, err)
	require.Len(t, filters, 1)
	assert.Equal(t, created.ID, filters[0].ID)

	other, err := svc.List(ctx, "departments")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, ctx := newFixture()

	in := models.CreateFilterInput{TableType: "users", Name: "Mine", Configuration: json.RawMessage(`{}`)}
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestCreateEnforcesPerTableLimit(t *testing.T) {
	svc, ctx := newFixture()

	for i := 0; i < maxFiltersPerTable; i++ {
		_, err := svc.Create(ctx, models.CreateFilterInput{
			TableType:     "teams",
			Name:          fmt.Sprintf("filter %d", i),
			Configuration: json.RawMessage(`{}`),
		})
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, models.CreateFilterInput{
		TableType:     "teams",
		Name:          "one too many",
		Configuration: json.RawMessage(`{}`),
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestDelete(t *testing.T) {
	svc, ctx := newFixture()

	created, err := svc.Create(ctx, models.CreateFilterInput{
		TableType:     "users",
		Name:          "Mine",
		Configuration: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "users", created.ID))

	err = svc.Delete(ctx, "users", created.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
