package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", payload{Name: "alice", Count: 3}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "alice", Count: 3}, got)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var got payload
	fetch := func() error {
		calls++
		got = payload{Name: "bob", Count: 1}
		return nil
	}

	require.NoError(t, Aside(ctx, "tweet:1", &got, time.Minute, fetch))
	assert.Equal(t, 1, calls)

	// second call is served from the cache
	got = payload{}
	require.NoError(t, Aside(ctx, "tweet:1", &got, time.Minute, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bob", got.Name)
}

func TestAsideFetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	boom := errors.New("db down")
	var got payload
	err := Aside(ctx, "k", &got, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// nothing was cached on failure
	found, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, TweetKey(1), payload{}, time.Minute))
	require.NoError(t, SetJSON(ctx, TimelineKey, payload{}, time.Minute))

	Invalidate(ctx, TweetKey(1), TimelineKey)
	assert.False(t, mr.Exists(TweetKey(1)))
	assert.False(t, mr.Exists(TimelineKey))
}

func TestNilClientIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "k", payload{}, time.Minute))
	Invalidate(ctx, "k")
}
