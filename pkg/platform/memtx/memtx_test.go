package memtx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRunsHooksInOrder(t *testing.T) {
	_, tx := With(context.Background())

	var got []int
	tx.OnCommit(func() { got = append(got, 1) })
	tx.OnCommit(func() { got = append(got, 2) })
	assert.Empty(t, got, "hooks must not run before commit")

	tx.Commit()
	assert.Equal(t, []int{1, 2}, got)

	tx.Commit()
	assert.Equal(t, []int{1, 2}, got, "hooks run once")
}

func TestWithReusesAmbientTx(t *testing.T) {
	ctx, outer := With(context.Background())
	ctx2, inner := With(ctx)

	assert.Same(t, outer, inner)
	assert.Equal(t, ctx, ctx2)

	fromCtx, ok := From(ctx)
	require.True(t, ok)
	assert.Same(t, outer, fromCtx)
}

func TestFromWithoutTx(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)
}
