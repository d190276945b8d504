package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "activity-feed"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "feed:user-1:suggested", []byte(`[]`), time.Minute))

	data, err := cache.Get(ctx, "feed:user-1:suggested")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	// Keys live under the configured prefix.
	assert.True(t, mr.Exists("activity-feed:feed:user-1:suggested"))
}

func TestCache_GetMissing(t *testing.T) {
	cache, _ := newTestCache(t)

	data, err := cache.Get(context.Background(), "feed:nobody:suggested")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Expiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "profile:user-1", []byte(`{}`), time.Second))
	mr.FastForward(2 * time.Second)

	data, err := cache.Get(ctx, "profile:user-1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "profile:user-1", []byte(`{}`), time.Minute))
	require.NoError(t, cache.Delete(ctx, "profile:user-1"))
	require.NoError(t, cache.Delete(ctx, "profile:user-1"))

	data, err := cache.Get(ctx, "profile:user-1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Clear(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "feed:user-1:suggested", []byte(`[]`), time.Minute))
	require.NoError(t, cache.Set(ctx, "profile:user-1", []byte(`{}`), time.Minute))
	// Foreign key outside the prefix must survive.
	require.NoError(t, mr.Set("other-app:key", "value"))

	require.NoError(t, cache.Clear(ctx))

	data, err := cache.Get(ctx, "feed:user-1:suggested")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.True(t, mr.Exists("other-app:key"))
}
