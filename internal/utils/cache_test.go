package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheSetGetDelete(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	var out map[string]int
	found, err := GetCache(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", map[string]int{"a": 1}, time.Minute))
	found, err = GetCache(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, out["a"])

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", 1, time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestGenerationCounter(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()

	gen, err := Generation(ctx, rdb, "gen")
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, BumpGeneration(ctx, rdb, "gen"))
	require.NoError(t, BumpGeneration(ctx, rdb, "gen"))
	gen, err = Generation(ctx, rdb, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 2, gen)
}
