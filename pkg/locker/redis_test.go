package locker

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

const syncLockKey = "feed:sync:all"

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	client := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	held, err := locker.Acquire(ctx, syncLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, held)

	require.NoError(t, locker.Release(ctx, syncLockKey))

	held, err = locker.Acquire(ctx, syncLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, held, "lock should be free again after release")
}

func TestRedisLocker_ContendedAcquire(t *testing.T) {
	client := setupTestRedis(t)
	first := NewRedisLocker(client, zap.NewNop())
	second := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	held, err := first.Acquire(ctx, syncLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, held)

	held, _ = second.Acquire(ctx, syncLockKey, 5*time.Second)
	assert.False(t, held, "contended acquire should report the lock as held")
}

func TestRedisLocker_ReleaseNotOwned(t *testing.T) {
	client := setupTestRedis(t)
	owner := NewRedisLocker(client, zap.NewNop())
	other := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	held, err := owner.Acquire(ctx, syncLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, held)

	// A foreign release is a no-op and the owner keeps the lock.
	require.NoError(t, other.Release(ctx, syncLockKey))

	held, _ = other.Acquire(ctx, syncLockKey, 5*time.Second)
	assert.False(t, held)

	require.NoError(t, owner.Release(ctx, syncLockKey))
}

func TestRedisLocker_SingleWinner(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	const instances = 5
	results := make(chan bool, instances)

	for i := 0; i < instances; i++ {
		go func() {
			locker := NewRedisLocker(client, zap.NewNop())
			held, _ := locker.Acquire(ctx, syncLockKey, 2*time.Second)
			results <- held
		}()
	}

	winners := 0
	for i := 0; i < instances; i++ {
		if <-results {
			winners++
		}
	}

	assert.Equal(t, 1, winners, "exactly one instance should win the lock")
}

func TestRedisLocker_CanceledContext(t *testing.T) {
	client := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	held, err := locker.Acquire(ctx, syncLockKey, 5*time.Second)
	assert.Error(t, err)
	assert.False(t, held)
}
