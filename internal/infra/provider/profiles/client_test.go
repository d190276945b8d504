package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/infra/provider"
)

func newTestClient() *Client {
	cfg := provider.ClientConfig{
		BaseURL: "https://upstream.example.com",
		Timeout: 5 * time.Second,
		Retry: provider.RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: provider.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func TestProfiles_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	doc := ProfileDoc{
		ID:             "user-1",
		DisplayName:    "Alex",
		Disciplines:    []string{"hiking", "climbing"},
		LocationCoords: map[string]any{"latitude": -33.8688, "longitude": 151.2093},
		SearchRadiusKm: 25,
		ExperienceLevels: map[string]string{
			"Hiking":   "intermediate",
			"climbing": "beginner",
		},
	}
	httpmock.RegisterResponder("GET", "https://upstream.example.com/api/profiles/user-1",
		httpmock.NewJsonResponderOrPanic(200, doc))

	client := newTestClient()
	profile, err := client.FetchProfile(context.Background(), "user-1")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, []string{"hiking", "climbing"}, profile.Disciplines)
	assert.Equal(t, 25.0, profile.Radius())

	coords := profile.Coordinates()
	require.NotNil(t, coords)
	assert.InDelta(t, -33.8688, coords.Lat, 0.0001)

	// Experience keys are lower-cased on ingest.
	level, ok := profile.ExperienceFor("HIKING")
	require.True(t, ok)
	assert.Equal(t, domain.DifficultyIntermediate, level)
}

func TestProfiles_Fetch_NotFound(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://upstream.example.com/api/profiles/ghost",
		httpmock.NewStringResponder(404, "not found"))

	client := newTestClient()
	profile, err := client.FetchProfile(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, profile, "missing profile is a valid outcome")
}

func TestProfiles_Fetch_ServerError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://upstream.example.com/api/profiles/user-1",
		httpmock.NewStringResponder(500, "boom"))

	client := newTestClient()
	profile, err := client.FetchProfile(context.Background(), "user-1")

	require.Error(t, err)
	assert.Nil(t, profile)
	assert.Contains(t, err.Error(), "status 500")
}

func TestProfiles_Fetch_LegacyLocationString(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	doc := ProfileDoc{
		ID:       "user-2",
		Location: "Location: -37.8136, 144.9631",
	}
	httpmock.RegisterResponder("GET", "https://upstream.example.com/api/profiles/user-2",
		httpmock.NewJsonResponderOrPanic(200, doc))

	client := newTestClient()
	profile, err := client.FetchProfile(context.Background(), "user-2")

	require.NoError(t, err)
	require.NotNil(t, profile)

	coords := profile.Coordinates()
	require.NotNil(t, coords)
	assert.InDelta(t, -37.8136, coords.Lat, 0.0001)
	assert.InDelta(t, 144.9631, coords.Lng, 0.0001)
}
