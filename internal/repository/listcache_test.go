package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/festive-table/internal/model"
)

func TestListCache_MissThenHit(t *testing.T) {
	_, client := setupRedis(t)
	lc := NewListCache(client, time.Minute)
	ctx := context.Background()

	_, ok := lc.Get(ctx)
	assert.False(t, ok)

	posts := []*model.Post{{ID: "p1", Name: "Sam", Icon: "🍕", Message: "hi"}}
	lc.Set(ctx, posts)

	got, ok := lc.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestListCache_Invalidate(t *testing.T) {
	_, client := setupRedis(t)
	lc := NewListCache(client, time.Minute)
	ctx := context.Background()

	lc.Set(ctx, []*model.Post{{ID: "p1"}})
	lc.Invalidate(ctx)

	_, ok := lc.Get(ctx)
	assert.False(t, ok)
}

func TestListCache_NilIsDisabled(t *testing.T) {
	var lc *ListCache
	ctx := context.Background()

	_, ok := lc.Get(ctx)
	assert.False(t, ok)
	lc.Set(ctx, nil)
	lc.Invalidate(ctx)

	// Zero TTL also disables caching.
	_, client := setupRedis(t)
	assert.Nil(t, NewListCache(client, 0))
	assert.Nil(t, NewListCache(nil, time.Minute))
}
