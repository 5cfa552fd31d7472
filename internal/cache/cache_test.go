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

type item struct {
	Name string `json:"name"`
}

func useMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = client.Close()
		client = nil
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := useMiniRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *item) func() error {
		return func() error {
			calls++
			dest.Name = "from-db"
			return nil
		}
	}

	var first item
	require.NoError(t, Aside(ctx, "k", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "from-db", first.Name)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("k"))

	var second item
	require.NoError(t, Aside(ctx, "k", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "from-db", second.Name)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := useMiniRedis(t)
	boom := errors.New("boom")

	var dest item
	err := Aside(context.Background(), "k", &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestAside_WithoutRedisCallsFetch(t *testing.T) {
	client = nil
	calls := 0
	var dest item
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), "k", &dest, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestAside_CorruptEntryFallsBackToFetch(t *testing.T) {
	mr := useMiniRedis(t)
	require.NoError(t, mr.Set("k", "{not json"))

	var dest item
	require.NoError(t, Aside(context.Background(), "k", &dest, time.Minute, func() error {
		dest.Name = "fresh"
		return nil
	}))
	assert.Equal(t, "fresh", dest.Name)
}

func TestInvalidateProfile(t *testing.T) {
	mr := useMiniRedis(t)
	require.NoError(t, mr.Set(ProfileByUserKey(3), "{}"))

	InvalidateProfile(context.Background(), 3)
	assert.False(t, mr.Exists(ProfileByUserKey(3)))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "profile:user:12", ProfileByUserKey(12))
	assert.Equal(t, "github:repos:octocat", GitHubReposKey("OctoCat"))
}
