package storage

import (
	"context"
	"testing"
	"time"

	"foros-bot/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDraft() *domain.ReviewDraft {
	return &domain.ReviewDraft{
		Phase:  domain.PhaseRating,
		Target: domain.Target{Category: domain.CategoryWaiters, StaffID: "1"},
	}
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)

	draft, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, draft)

	require.NoError(t, store.Set(ctx, 100, testDraft()))

	draft, err = store.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, domain.PhaseRating, draft.Phase)
	assert.Equal(t, "1", draft.Target.StaffID)

	// the returned draft is a copy
	draft.Rating = 5
	again, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Zero(t, again.Rating)

	require.NoError(t, store.Clear(ctx, 100))
	draft, err = store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(10 * time.Millisecond)

	require.NoError(t, store.Set(ctx, 100, testDraft()))
	time.Sleep(30 * time.Millisecond)

	draft, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestRedisSessionStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	draft, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, draft)

	saved := testDraft()
	saved.Phase = domain.PhaseText
	saved.Rating = 4
	require.NoError(t, store.Set(ctx, 100, saved))

	draft, err = store.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, domain.PhaseText, draft.Phase)
	assert.Equal(t, 4, draft.Rating)
	assert.Equal(t, domain.CategoryWaiters, draft.Target.Category)

	assert.Greater(t, server.TTL(sessionKey(100)), time.Duration(0))

	require.NoError(t, store.Clear(ctx, 100))
	draft, err = store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestRedisSessionStore_TTLExpiry(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 100, testDraft()))
	server.FastForward(2 * time.Minute)

	draft, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, draft)
}
