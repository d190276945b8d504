// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
)

// FeedOptions tunes feed assembly.
type FeedOptions struct {
	// CandidatePoolSize bounds how many candidates of each kind are
	// loaded from storage per feed build.
	CandidatePoolSize int

	// MaxItems bounds the assembled feed before the per-request limit.
	MaxItems int

	CacheEnabled bool
	FeedTTL      time.Duration
	ProfileTTL   time.Duration
}

// FeedService assembles personalized feeds from synced candidates.
type FeedService struct {
	repo     domain.CandidateRepository
	profiles domain.ProfileSource
	cache    domain.Cache
	opts     FeedOptions
	logger   *zap.Logger
}

// NewFeedService creates a new FeedService. cache may be nil when caching is
// disabled.
func NewFeedService(
	repo domain.CandidateRepository,
	profiles domain.ProfileSource,
	cache domain.Cache,
	opts FeedOptions,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		repo:     repo,
		profiles: profiles,
		cache:    cache,
		opts:     opts,
		logger:   logger,
	}
}

// GetFeed builds the feed for a user. The assembled feed is cached per
// (user, mode); limit is applied after assembly so one cache entry serves
// any page size.
func (s *FeedService) GetFeed(ctx context.Context, userID string, mode domain.FeedMode, limit int) ([]domain.FeedItem, error) {
	cacheKey := fmt.Sprintf("feed:%s:%s", userID, mode)

	if items, ok := s.cachedFeed(ctx, cacheKey); ok {
		return truncate(items, limit), nil
	}

	items, err := s.buildFeed(ctx, userID, mode)
	if err != nil {
		return nil, err
	}

	s.storeFeed(ctx, cacheKey, items)

	return truncate(items, limit), nil
}

func (s *FeedService) buildFeed(ctx context.Context, userID string, mode domain.FeedMode) ([]domain.FeedItem, error) {
	now := time.Now().UTC()

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		// A profile outage degrades to an unpersonalized feed rather
		// than failing the request.
		s.logger.Warn("profile unavailable, building unpersonalized feed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		profile = nil
	}

	personalized := profile != nil
	if profile == nil {
		// Without a profile every factor contributes zero and no
		// suggestion clears the threshold, but the user's own content
		// still shows in involved mode.
		profile = &domain.Profile{ID: userID}
	}

	ownedActivities, err := s.repo.ListActivitiesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading owned activities: %w", err)
	}

	ownedEvents, err := s.repo.ListEventsInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading involved events: %w", err)
	}

	publicActivities, err := s.repo.ListPublicActivities(ctx, s.opts.CandidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("loading activity pool: %w", err)
	}

	publicEvents, err := s.repo.ListUpcomingEvents(ctx, now, s.opts.CandidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("loading event pool: %w", err)
	}

	items := domain.BuildFeed(mode, profile, ownedActivities, ownedEvents, publicActivities, publicEvents, now)
	if s.opts.MaxItems > 0 && len(items) > s.opts.MaxItems {
		items = items[:s.opts.MaxItems]
	}

	s.logger.Debug("feed built",
		zap.String("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int("items", len(items)),
		zap.Bool("personalized", personalized),
	)

	return items, nil
}

// getProfile fetches the viewer profile, cached under profile:<id>.
// A cached miss marker is not stored; missing profiles are cheap upstream.
func (s *FeedService) getProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	cacheKey := "profile:" + userID

	if s.cacheReady() {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var profile domain.Profile
			if err := json.Unmarshal(data, &profile); err == nil {
				return &profile, nil
			}
		}
	}

	profile, err := s.profiles.FetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	if s.cacheReady() {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.opts.ProfileTTL); err != nil {
				s.logger.Warn("profile cache write failed", zap.Error(err))
			}
		}
	}

	return profile, nil
}

// GetActivity retrieves a single activity by internal ID.
// Returns nil when not found.
func (s *FeedService) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	activity, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		s.logger.Error("get activity failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return activity, nil
}

// GetEvent retrieves a single event by internal ID.
// Returns nil when not found.
func (s *FeedService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		s.logger.Error("get event failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return event, nil
}

// Counts returns candidate totals for the ops dashboard.
func (s *FeedService) Counts(ctx context.Context) (domain.CandidateCounts, error) {
	return s.repo.Counts(ctx)
}

// ClearCache drops every cached feed and profile.
func (s *FeedService) ClearCache(ctx context.Context) error {
	if !s.cacheReady() {
		return nil
	}
	return s.cache.Clear(ctx)
}

func (s *FeedService) cacheReady() bool {
	return s.opts.CacheEnabled && s.cache != nil
}

func (s *FeedService) cachedFeed(ctx context.Context, key string) ([]domain.FeedItem, bool) {
	if !s.cacheReady() {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var items []domain.FeedItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("dropping undecodable cached feed", zap.String("key", key))
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}

	return items, true
}

func (s *FeedService) storeFeed(ctx context.Context, key string, items []domain.FeedItem) {
	if !s.cacheReady() {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.opts.FeedTTL); err != nil {
		s.logger.Warn("feed cache write failed", zap.Error(err))
	}
}

func truncate(items []domain.FeedItem, limit int) []domain.FeedItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
