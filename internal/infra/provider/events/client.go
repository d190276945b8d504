// Package events implements the upstream events source.
package events

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/infra/provider"
)

// Endpoint is the API path for the upstream events collection.
const Endpoint = "/api/events"

// Client implements domain.CandidateSource for upstream events.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new events source client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "events",
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response]("events", cfg.CB),
		logger: logger,
	}
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves all events from the upstream backend.
func (c *Client) Fetch(ctx context.Context) (*domain.CandidateBatch, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("events source returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("events fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching events: %w", err)
	}

	result := resp.Result().(*Response)
	batch := &domain.CandidateBatch{
		Events: make([]*domain.Event, 0, len(result.Events)),
	}
	for _, doc := range result.Events {
		batch.Events = append(batch.Events, doc.ToDomain(c.name))
	}

	c.logger.Info("events fetch completed",
		zap.Int("count", len(batch.Events)),
	)

	return batch, nil
}

// HealthCheck verifies the upstream backend is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
