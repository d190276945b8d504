package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
)

// fakeRepo is an in-memory CandidateRepository. The mutex covers the
// upsert paths, which SyncAll drives concurrently.
type fakeRepo struct {
	mu         sync.Mutex
	activities []*domain.Activity
	events     []*domain.Event
	err        error
}

func (f *fakeRepo) ListPublicActivities(_ context.Context, limit int) ([]*domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.activities) > limit {
		return f.activities[:limit], nil
	}
	return f.activities, nil
}

func (f *fakeRepo) ListActivitiesByOwner(_ context.Context, ownerID string) ([]*domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Activity
	for _, a := range f.activities {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetActivity(_ context.Context, id string) (*domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) BulkUpsertActivities(_ context.Context, activities []*domain.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, activities...)
	return nil
}

func (f *fakeRepo) ListUpcomingEvents(_ context.Context, after time.Time, limit int) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.events {
		if e.Date.After(after) {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) ListEventsInvolving(_ context.Context, userID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.events {
		if e.OrganizerID == userID {
			out = append(out, e)
			continue
		}
		for _, p := range e.Participants {
			if p == userID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) BulkUpsertEvents(_ context.Context, events []*domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeRepo) Counts(_ context.Context) (domain.CandidateCounts, error) {
	return domain.CandidateCounts{
		Activities: int64(len(f.activities)),
		Events:     int64(len(f.events)),
	}, f.err
}

// fakeProfileSource returns a fixed profile, counting fetches.
type fakeProfileSource struct {
	profile *domain.Profile
	err     error
	calls   int
}

func (f *fakeProfileSource) FetchProfile(_ context.Context, _ string) (*domain.Profile, error) {
	f.calls++
	return f.profile, f.err
}

// fakeCache is an in-memory domain.Cache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string][]byte)
	return nil
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		ID:             "user-1",
		Disciplines:    []string{"hiking"},
		LocationCoords: domain.Coordinates{Lat: 0, Lng: 0},
		SearchRadiusKm: 50,
	}
}

func nearbyActivity(id, owner string, now time.Time) *domain.Activity {
	return &domain.Activity{
		ID:        id,
		Name:      "Trailhead Meetup",
		Types:     []string{"hiking"},
		Location:  "0.01,0.01",
		OwnerID:   owner,
		CreatedAt: now.Add(-24 * time.Hour),
	}
}

func newTestFeedService(repo *fakeRepo, profiles *fakeProfileSource, cache domain.Cache) *FeedService {
	return NewFeedService(repo, profiles, cache,
		FeedOptions{
			CandidatePoolSize: 100,
			MaxItems:          40,
			CacheEnabled:      cache != nil,
			FeedTTL:           time.Minute,
			ProfileTTL:        time.Minute,
		},
		zap.NewNop(),
	)
}

func TestFeedService_GetFeed_Suggested(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{
		activities: []*domain.Activity{
			nearbyActivity("act-1", "user-2", now),
			nearbyActivity("act-own", "user-1", now),
		},
	}
	profiles := &fakeProfileSource{profile: testProfile()}
	svc := newTestFeedService(repo, profiles, nil)

	items, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "act-1", items[0].ID)
	assert.Greater(t, items[0].Score, 10.0)
}

func TestFeedService_GetFeed_InvolvedPinsOwnContent(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{
		activities: []*domain.Activity{
			nearbyActivity("act-own", "user-1", now),
			nearbyActivity("act-other", "user-2", now),
		},
		events: []*domain.Event{
			{
				ID:           "evt-joined",
				Title:        "Group Hike",
				Date:         now.Add(48 * time.Hour),
				Participants: []string{"user-1"},
				OrganizerID:  "user-9",
				CreatedAt:    now.Add(-time.Hour),
			},
		},
	}
	profiles := &fakeProfileSource{profile: testProfile()}
	svc := newTestFeedService(repo, profiles, nil)

	items, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeInvolved, 0)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	// Own content comes first with the fixed involvement score.
	assert.Equal(t, 100.0, items[0].Score)
	assert.Equal(t, 100.0, items[1].Score)
}

func TestFeedService_GetFeed_LimitApplied(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{}
	for i := 0; i < 10; i++ {
		a := nearbyActivity("act", "user-2", now)
		a.ID = a.ID + string(rune('a'+i))
		repo.activities = append(repo.activities, a)
	}
	profiles := &fakeProfileSource{profile: testProfile()}
	svc := newTestFeedService(repo, profiles, nil)

	items, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestFeedService_GetFeed_MissingProfile(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{
		activities: []*domain.Activity{
			nearbyActivity("act-1", "user-2", now),
			nearbyActivity("act-own", "user-1", now),
		},
	}
	profiles := &fakeProfileSource{profile: nil}
	svc := newTestFeedService(repo, profiles, nil)

	// Without a profile no suggestion clears the threshold.
	items, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Involved mode still surfaces the user's own content.
	items, err = svc.GetFeed(context.Background(), "user-1", domain.FeedModeInvolved, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "act-own", items[0].ID)
}

func TestFeedService_GetFeed_ProfileOutageDegrades(t *testing.T) {
	repo := &fakeRepo{}
	profiles := &fakeProfileSource{err: errors.New("upstream down")}
	svc := newTestFeedService(repo, profiles, nil)

	items, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err, "profile outage must not fail the feed")
	assert.Empty(t, items)
}

func TestFeedService_GetFeed_CachesAssembledFeed(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{
		activities: []*domain.Activity{nearbyActivity("act-1", "user-2", now)},
	}
	profiles := &fakeProfileSource{profile: testProfile()}
	cache := newFakeCache()
	svc := newTestFeedService(repo, profiles, cache)

	first, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, profiles.calls)

	// Second call serves from cache without another profile fetch.
	second, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Score, second[0].Score)
	assert.Equal(t, 1, profiles.calls)
}

func TestFeedService_ClearCache(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{
		activities: []*domain.Activity{nearbyActivity("act-1", "user-2", now)},
	}
	profiles := &fakeProfileSource{profile: testProfile()}
	cache := newFakeCache()
	svc := newTestFeedService(repo, profiles, cache)

	_, err := svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err)
	require.NoError(t, svc.ClearCache(context.Background()))

	_, err = svc.GetFeed(context.Background(), "user-1", domain.FeedModeSuggested, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, profiles.calls, "cleared cache forces a rebuild")
}

func TestFeedService_GetActivityAndEvent(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeRepo{
		activities: []*domain.Activity{nearbyActivity("act-1", "user-2", now)},
		events: []*domain.Event{
			{ID: "evt-1", Title: "Hike", OrganizerID: "user-2", Date: now.Add(time.Hour)},
		},
	}
	svc := newTestFeedService(repo, &fakeProfileSource{}, nil)
	ctx := context.Background()

	activity, err := svc.GetActivity(ctx, "act-1")
	require.NoError(t, err)
	require.NotNil(t, activity)

	missing, err := svc.GetActivity(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	event, err := svc.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	require.NotNil(t, event)
}
