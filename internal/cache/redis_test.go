package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t)

	_, err := c.Get(ctx, "editors_1_10")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "editors_1_10", `[{"id":1}]`, time.Hour, "editorsCache"))

	val, err := c.Get(ctx, "editors_1_10")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, val)

	members, err := mr.Members(tagPrefix + "editorsCache")
	require.NoError(t, err)
	assert.Equal(t, []string{"editors_1_10"}, members)
	assert.Equal(t, time.Hour, mr.TTL("editors_1_10"))
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute, "t"))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCache_InvalidateByTag(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t)

	require.NoError(t, c.Set(ctx, "video_games_1_10", "a", time.Hour, "videoGamesCache"))
	require.NoError(t, c.Set(ctx, "video_games_3_20", "b", time.Hour, "videoGamesCache"))
	require.NoError(t, c.Set(ctx, "categories_1_10", "c", time.Hour, "categoriesCache"))

	require.NoError(t, c.InvalidateByTag(ctx, "videoGamesCache"))

	assert.False(t, mr.Exists("video_games_1_10"))
	assert.False(t, mr.Exists("video_games_3_20"))
	assert.False(t, mr.Exists(tagPrefix+"videoGamesCache"))
	assert.True(t, mr.Exists("categories_1_10"))

	require.NoError(t, c.InvalidateByTag(ctx, "videoGamesCache"), "empty tag is a no-op")
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}
