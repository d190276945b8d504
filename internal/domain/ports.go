package domain

import (
	"context"
	"time"
)

// CandidateRepository defines persistence for synced activities and events.
// Implementation: internal/infra/postgres/repository.go
type CandidateRepository interface {
	// ListPublicActivities returns the public activity pool, newest first.
	ListPublicActivities(ctx context.Context, limit int) ([]*Activity, error)

	// ListActivitiesByOwner returns activities owned by the given user.
	ListActivitiesByOwner(ctx context.Context, ownerID string) ([]*Activity, error)

	// GetActivity retrieves a single activity by internal ID.
	GetActivity(ctx context.Context, id string) (*Activity, error)

	// BulkUpsertActivities creates or updates activities in a batch,
	// keyed on source_id + external_id.
	BulkUpsertActivities(ctx context.Context, activities []*Activity) error

	// ListUpcomingEvents returns events scheduled after the given time,
	// soonest first.
	ListUpcomingEvents(ctx context.Context, after time.Time, limit int) ([]*Event, error)

	// ListEventsInvolving returns events the user organizes or joined.
	ListEventsInvolving(ctx context.Context, userID string) ([]*Event, error)

	// GetEvent retrieves a single event by internal ID.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// BulkUpsertEvents creates or updates events in a batch,
	// keyed on source_id + external_id.
	BulkUpsertEvents(ctx context.Context, events []*Event) error

	// Counts returns candidate totals for the ops dashboard.
	Counts(ctx context.Context) (CandidateCounts, error)
}

// CandidateCounts holds dashboard statistics.
type CandidateCounts struct {
	Activities int64            `json:"activities"`
	Events     int64            `json:"events"`
	BySource   map[string]int64 `json:"by_source,omitempty"`
}

// CandidateBatch is one source fetch result. A source may supply either or
// both candidate kinds.
type CandidateBatch struct {
	Activities []*Activity
	Events     []*Event
}

// CandidateSource defines an external supplier of raw candidate documents.
// Implementations: internal/infra/provider/activities, internal/infra/provider/events
type CandidateSource interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Fetch retrieves all available candidates from the source.
	Fetch(ctx context.Context) (*CandidateBatch, error)

	// HealthCheck verifies the source is accessible.
	HealthCheck(ctx context.Context) error
}

// ProfileSource supplies viewer profiles from the upstream auth/profile
// layer. Implementation: internal/infra/provider/profiles
type ProfileSource interface {
	// FetchProfile retrieves the profile for a user id.
	FetchProfile(ctx context.Context, userID string) (*Profile, error)
}

// Cache defines byte-oriented caching with TTLs.
// Implementation: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
