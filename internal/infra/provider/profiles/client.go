// Package profiles implements the upstream profile source.
package profiles

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/infra/provider"
)

// Endpoint is the API path for the upstream profiles collection.
const Endpoint = "/api/profiles/{userID}"

// Client implements domain.ProfileSource against the upstream backend.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new profile source client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response]("profiles", cfg.CB),
		logger: logger,
	}
}

// FetchProfile retrieves the profile for a user id.
// A missing profile returns nil without error; the feed then scores with
// every factor at its zero contribution.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result ProfileDoc
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			SetPathParam("userID", userID).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		// Not found is a valid outcome, not a breaker failure.
		if r.IsError() && r.StatusCode() != http.StatusNotFound {
			return nil, fmt.Errorf("profile source returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("profile fetch failed",
			zap.String("user_id", userID),
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching profile %s: %w", userID, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		c.logger.Debug("profile not found", zap.String("user_id", userID))
		return nil, nil
	}

	return resp.Result().(*ProfileDoc).ToDomain(), nil
}
