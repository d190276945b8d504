package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
)

// SyncService pulls candidates from the upstream sources into storage.
type SyncService struct {
	repo    domain.CandidateRepository
	sources []domain.CandidateSource
	logger  *zap.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(repo domain.CandidateRepository, sources []domain.CandidateSource, logger *zap.Logger) *SyncService {
	return &SyncService{
		repo:    repo,
		sources: sources,
		logger:  logger,
	}
}

// SyncResult holds the outcome of syncing one source.
type SyncResult struct {
	Source     string
	Activities int
	Events     int
	Duration   time.Duration
	Error      error
}

// SyncAll synchronizes every source concurrently. Partial failures are
// allowed; each source reports its own result.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.sources))
	var wg sync.WaitGroup

	s.logger.Info("starting sync from all sources",
		zap.Int("source_count", len(s.sources)),
	)

	for i, source := range s.sources {
		wg.Add(1)
		go func(idx int, src domain.CandidateSource) {
			defer wg.Done()
			results[idx] = s.syncSource(ctx, src)
		}(i, source)
	}

	wg.Wait()

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
		} else {
			totalSynced += r.Activities + r.Events
		}
	}

	s.logger.Info("sync completed",
		zap.Int("total_synced", totalSynced),
		zap.Int("sources_failed", totalErrors),
	)

	return results
}

// syncSource fetches and upserts candidates from a single source.
func (s *SyncService) syncSource(ctx context.Context, source domain.CandidateSource) SyncResult {
	start := time.Now()
	result := SyncResult{
		Source: source.Name(),
	}

	batch, err := source.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("source fetch failed",
			zap.String("source", source.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(batch.Activities) > 0 {
		if err := s.repo.BulkUpsertActivities(ctx, batch.Activities); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("activity upsert failed",
				zap.String("source", source.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	if len(batch.Events) > 0 {
		if err := s.repo.BulkUpsertEvents(ctx, batch.Events); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("event upsert failed",
				zap.String("source", source.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Activities = len(batch.Activities)
	result.Events = len(batch.Events)
	result.Duration = time.Since(start)

	s.logger.Info("source sync completed",
		zap.String("source", source.Name()),
		zap.Int("activities", result.Activities),
		zap.Int("events", result.Events),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// SyncSource synchronizes a single source by name.
// Returns nil when the source is unknown.
func (s *SyncService) SyncSource(ctx context.Context, name string) (*SyncResult, error) {
	for _, src := range s.sources {
		if src.Name() == name {
			result := s.syncSource(ctx, src)
			return &result, result.Error
		}
	}
	return nil, nil
}

// SourceNames returns the names of all registered sources.
func (s *SyncService) SourceNames() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name()
	}
	return names
}
