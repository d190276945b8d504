// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"activity-feed-service/internal/app/service"
	"activity-feed-service/internal/transport/httpserver/dto"
	"activity-feed-service/internal/validator"
)

// FeedHandler handles feed-related HTTP requests.
type FeedHandler struct {
	service   *service.FeedService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc *service.FeedService, v *validator.Validator, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// GetFeed handles GET /api/v1/feed
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	mode := req.FeedMode()
	items, err := h.service.GetFeed(c.Context(), req.UserID, mode, req.Limit)
	if err != nil {
		h.logger.Error("feed build failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to build feed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromFeedItems(req.UserID, mode, items))
}
