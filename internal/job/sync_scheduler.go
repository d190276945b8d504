// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"activity-feed-service/internal/app/service"
	"activity-feed-service/pkg/locker"
)

// SyncScheduler runs periodic candidate synchronization. A distributed lock
// ensures only one instance syncs per interval.
type SyncScheduler struct {
	syncService *service.SyncService
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	locker      locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SyncConfig holds sync scheduler configuration.
type SyncConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewSyncScheduler creates a new SyncScheduler.
func NewSyncScheduler(
	syncSvc *service.SyncService,
	cfg SyncConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *SyncScheduler {
	return &SyncScheduler{
		syncService: syncSvc,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		logger:      logger,
		locker:      locker,
	}
}

// Start begins the background sync job.
func (s *SyncScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting sync scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *SyncScheduler) Stop() {
	s.logger.Info("stopping sync scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("sync scheduler stopped")
}

func (s *SyncScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeSync()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeSync()
		}
	}
}

// executeSync runs one sync cycle under the distributed lock.
//
// The lock TTL equals the sync interval: after a successful run the lock is
// kept as a cooldown so no other instance repeats the work, while a failed
// run releases it immediately so another instance may retry.
func (s *SyncScheduler) executeSync() {
	const lockKey = "feed:sync:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running sync, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results := s.syncService.SyncAll(ctx)

	totalSynced := 0
	totalErrors := 0

	for _, r := range results {
		if r.Error != nil {
			totalErrors++
			s.logger.Warn("source sync failed",
				zap.String("source", r.Source),
				zap.Error(r.Error),
			)
		} else {
			totalSynced += r.Activities + r.Events
		}
	}

	if totalErrors > 0 {
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after sync error", zap.Error(err))
		}
		s.logger.Info("sync completed with errors, lock released for retry",
			zap.Int("total_synced", totalSynced),
			zap.Int("sources_failed", totalErrors),
		)

		return
	}

	s.logger.Info("sync completed successfully, lock held for cooldown",
		zap.Int("total_synced", totalSynced),
		zap.Duration("cooldown", s.interval),
	)
}
