// Package locker provides distributed locking for coordinating work across
// multiple service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates exclusive work across instances.
// Implementations must be safe for concurrent use.
//
//	held, err := locker.Acquire(ctx, "feed:sync", 10*time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !held {
//	    return nil // another instance is syncing
//	}
//	defer locker.Release(ctx, "feed:sync")
type DistributedLocker interface {
	// Acquire attempts to take the lock identified by key. It returns true
	// when the lock was taken and false when another instance holds it.
	// The lock expires on its own after ttl if never released, so a crashed
	// holder cannot wedge the system. For cooldown-style usage pass the
	// cooldown period as ttl and skip the Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives up the lock identified by key. Calling it for a lock
	// this instance never acquired is a no-op.
	Release(ctx context.Context, key string) error
}
