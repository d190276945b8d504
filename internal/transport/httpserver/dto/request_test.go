package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

func TestFeedRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  FeedRequest
	}{
		{
			name: "minimal valid request",
			req:  FeedRequest{UserID: "user-1"},
		},
		{
			name: "suggested mode",
			req:  FeedRequest{UserID: "user-1", Mode: "suggested"},
		},
		{
			name: "involved mode",
			req:  FeedRequest{UserID: "user-1", Mode: "involved"},
		},
		{
			name: "limit at max",
			req:  FeedRequest{UserID: "user-1", Limit: 100},
		},
		{
			name: "limit at min",
			req:  FeedRequest{UserID: "user-1", Limit: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(&tt.req))
		})
	}
}

func TestFeedRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name  string
		req   FeedRequest
		field string
	}{
		{
			name:  "missing user id",
			req:   FeedRequest{Mode: "suggested"},
			field: "user_id",
		},
		{
			name:  "unknown mode",
			req:   FeedRequest{UserID: "user-1", Mode: "trending"},
			field: "mode",
		},
		{
			name:  "limit above max",
			req:   FeedRequest{UserID: "user-1", Limit: 101},
			field: "limit",
		},
		{
			name:  "negative limit",
			req:   FeedRequest{UserID: "user-1", Limit: -1},
			field: "limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)

			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestFeedRequest_FeedMode_Default(t *testing.T) {
	req := FeedRequest{UserID: "user-1"}
	assert.Equal(t, domain.FeedModeSuggested, req.FeedMode())

	req.Mode = "involved"
	assert.Equal(t, domain.FeedModeInvolved, req.FeedMode())
}
