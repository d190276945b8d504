// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "activity-feed-service/internal/domain"

// FeedRequest represents the query parameters for the feed endpoint.
type FeedRequest struct {
	UserID string `query:"user_id" validate:"required,max=100"`
	Mode   string `query:"mode" validate:"omitempty,oneof=suggested involved"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// FeedMode resolves the requested mode, defaulting to suggested.
func (r *FeedRequest) FeedMode() domain.FeedMode {
	if r.Mode == string(domain.FeedModeInvolved) {
		return domain.FeedModeInvolved
	}
	return domain.FeedModeSuggested
}
