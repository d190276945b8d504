package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
)

// fakeSource is a scripted CandidateSource.
type fakeSource struct {
	name  string
	batch *domain.CandidateBatch
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context) (*domain.CandidateBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeSource) HealthCheck(_ context.Context) error { return f.err }

func syncBatch(activities, events int) *domain.CandidateBatch {
	batch := &domain.CandidateBatch{}
	for i := 0; i < activities; i++ {
		batch.Activities = append(batch.Activities, &domain.Activity{
			SourceID:   "test",
			ExternalID: "act-" + string(rune('a'+i)),
			Name:       "Activity",
			CreatedAt:  time.Now().UTC(),
		})
	}
	for i := 0; i < events; i++ {
		batch.Events = append(batch.Events, &domain.Event{
			SourceID:   "test",
			ExternalID: "evt-" + string(rune('a'+i)),
			Title:      "Event",
			Date:       time.Now().UTC().Add(24 * time.Hour),
		})
	}
	return batch
}

func TestSyncService_SyncAll(t *testing.T) {
	repo := &fakeRepo{}
	sources := []domain.CandidateSource{
		&fakeSource{name: "activities", batch: syncBatch(3, 0)},
		&fakeSource{name: "events", batch: syncBatch(0, 2)},
	}
	svc := NewSyncService(repo, sources, zap.NewNop())

	results := svc.SyncAll(context.Background())
	require.Len(t, results, 2)

	byName := make(map[string]SyncResult, len(results))
	for _, r := range results {
		byName[r.Source] = r
	}

	require.NoError(t, byName["activities"].Error)
	assert.Equal(t, 3, byName["activities"].Activities)
	require.NoError(t, byName["events"].Error)
	assert.Equal(t, 2, byName["events"].Events)

	assert.Len(t, repo.activities, 3)
	assert.Len(t, repo.events, 2)
}

func TestSyncService_SyncAll_PartialFailure(t *testing.T) {
	repo := &fakeRepo{}
	sources := []domain.CandidateSource{
		&fakeSource{name: "activities", err: errors.New("upstream timeout")},
		&fakeSource{name: "events", batch: syncBatch(0, 2)},
	}
	svc := NewSyncService(repo, sources, zap.NewNop())

	results := svc.SyncAll(context.Background())
	require.Len(t, results, 2)

	byName := make(map[string]SyncResult, len(results))
	for _, r := range results {
		byName[r.Source] = r
	}

	// One source failing does not block the other.
	require.Error(t, byName["activities"].Error)
	require.NoError(t, byName["events"].Error)
	assert.Len(t, repo.events, 2)
	assert.Empty(t, repo.activities)
}

func TestSyncService_SyncAll_UpsertFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	sources := []domain.CandidateSource{
		&fakeSource{name: "activities", batch: syncBatch(1, 0)},
	}
	svc := NewSyncService(repo, sources, zap.NewNop())

	results := svc.SyncAll(context.Background())
	require.Len(t, results, 1)
	require.Error(t, results[0].Error)
	assert.Zero(t, results[0].Activities)
}

func TestSyncService_SyncSource(t *testing.T) {
	repo := &fakeRepo{}
	sources := []domain.CandidateSource{
		&fakeSource{name: "activities", batch: syncBatch(2, 0)},
	}
	svc := NewSyncService(repo, sources, zap.NewNop())

	result, err := svc.SyncSource(context.Background(), "activities")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Activities)
}

func TestSyncService_SyncSource_Unknown(t *testing.T) {
	svc := NewSyncService(&fakeRepo{}, nil, zap.NewNop())

	result, err := svc.SyncSource(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSyncService_SourceNames(t *testing.T) {
	svc := NewSyncService(&fakeRepo{}, []domain.CandidateSource{
		&fakeSource{name: "activities"},
		&fakeSource{name: "events"},
	}, zap.NewNop())

	assert.Equal(t, []string{"activities", "events"}, svc.SourceNames())
}
