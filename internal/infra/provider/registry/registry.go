// Package registry wires the upstream source clients from configuration.
package registry

import (
	"activity-feed-service/internal/config"
	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/infra/provider"
	"activity-feed-service/internal/infra/provider/activities"
	"activity-feed-service/internal/infra/provider/events"
	"activity-feed-service/internal/infra/provider/profiles"

	"go.uber.org/zap"
)

// clientConfig maps the upstream settings to a provider client config.
// One base URL serves every resource, so all clients share it.
func clientConfig(cfg config.UpstreamConfig) provider.ClientConfig {
	return provider.ClientConfig{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retry: provider.RetryConfig{
			MaxAttempts: cfg.Retry.MaxAttempts,
			WaitTime:    cfg.Retry.WaitTime,
			MaxWaitTime: cfg.Retry.MaxWaitTime,
		},
		CB: provider.CBConfig{
			MaxRequests:  cfg.CB.MaxRequests,
			Interval:     cfg.CB.Interval,
			Timeout:      cfg.CB.Timeout,
			FailureRatio: cfg.CB.FailureRatio,
		},
	}
}

// NewCandidateSources creates the configured candidate source clients.
// Each source gets its own circuit breaker so one failing upstream
// collection cannot block the other.
func NewCandidateSources(cfg config.UpstreamConfig, logger *zap.Logger) []domain.CandidateSource {
	cc := clientConfig(cfg)

	return []domain.CandidateSource{
		activities.New(cc, logger),
		events.New(cc, logger),
	}
}

// NewProfileSource creates the profile source client.
func NewProfileSource(cfg config.UpstreamConfig, logger *zap.Logger) domain.ProfileSource {
	return profiles.New(clientConfig(cfg), logger)
}
