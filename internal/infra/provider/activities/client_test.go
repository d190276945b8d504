package activities

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/infra/provider"
)

const testEndpoint = "https://upstream.example.com/api/activities"

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

func mockSuccessResponse() Response {
	return Response{
		Activities: []ActivityDoc{
			{
				ID:           "act-1",
				Name:         "Blue Mountains Day Hike",
				Types:        []string{"hiking", "trail running"},
				Location:     "-33.7320,150.3120",
				Difficulty:   "intermediate",
				OwnerID:      "user-owner",
				Participants: []string{"u1", "u2", "u3"},
				CreatedAt:    "2026-08-20T10:00:00Z",
			},
			{
				ID:         "act-2",
				Name:       "Harbour Kayak Loop",
				Types:      []string{"kayaking"},
				Location:   map[string]any{"latitude": -33.8568, "longitude": 151.2153},
				Difficulty: "beginner",
				OwnerID:    "user-2",
				CreatedAt:  "2026-08-25T08:30:00Z",
			},
		},
		Total: 2,
	}
}

func TestActivities_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockSuccessResponse()))

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, batch.Activities, 2)
	assert.Empty(t, batch.Events)

	first := batch.Activities[0]
	assert.Equal(t, "activities", first.SourceID)
	assert.Equal(t, "act-1", first.ExternalID)
	assert.Equal(t, "Blue Mountains Day Hike", first.Name)
	assert.Equal(t, []string{"hiking", "trail running"}, first.Types)
	assert.Equal(t, domain.DifficultyIntermediate, first.Difficulty)
	assert.Equal(t, 3, first.ParticipantCount)

	// String-encoded locations pass through to the parser untouched.
	assert.Equal(t, "-33.7320,150.3120", first.Location)
	require.NotNil(t, first.Coordinates())

	// Structured object locations are flattened but still parseable.
	second := batch.Activities[1]
	coords := second.Coordinates()
	require.NotNil(t, coords)
	assert.InDelta(t, -33.8568, coords.Lat, 0.0001)
	assert.InDelta(t, 151.2153, coords.Lng, 0.0001)
}

func TestActivities_Fetch_Empty(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, Response{}))

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, batch.Activities)
}

func TestActivities_Fetch_HTTPError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"400 Bad Request", 400},
		{"404 Not Found", 404},
		{"500 Internal Server Error", 500},
		{"503 Service Unavailable", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			batch, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, batch)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

func TestActivities_Fetch_RetriesOn5xx(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				return httpmock.NewStringResponse(500, "Server Error"), nil
			}

			return httpmock.NewJsonResponse(200, mockSuccessResponse())
		})

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, batch.Activities, 2)
	assert.Equal(t, 3, callCount, "should retry twice and succeed on the third attempt")
}

func TestActivities_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()

	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	// The breaker is open now, so the next call fails without an HTTP request.
	start := time.Now()
	_, err := client.Fetch(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed.Milliseconds(), int64(100))
}

func TestActivities_Fetch_InvalidCreatedAt(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := Response{
		Activities: []ActivityDoc{
			{ID: "act-1", Name: "Test", CreatedAt: "not-a-date"},
		},
	}
	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, batch.Activities, 1)
	assert.True(t, batch.Activities[0].CreatedAt.IsZero())
}

func TestActivities_Name(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	assert.Equal(t, "activities", newTestClient().Name())
}
