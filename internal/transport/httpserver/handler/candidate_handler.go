package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"activity-feed-service/internal/app/service"
	"activity-feed-service/internal/transport/httpserver/dto"
)

// CandidateHandler serves individual synced candidates.
type CandidateHandler struct {
	service *service.FeedService
	logger  *zap.Logger
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(svc *service.FeedService, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{
		service: svc,
		logger:  logger,
	}
}

// GetActivity handles GET /api/v1/activities/:id
func (h *CandidateHandler) GetActivity(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	activity, err := h.service.GetActivity(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get activity",
			Code:  "INTERNAL_ERROR",
		})
	}

	if activity == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "activity not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainActivity(activity))
}

// GetEvent handles GET /api/v1/events/:id
func (h *CandidateHandler) GetEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	event, err := h.service.GetEvent(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get event",
			Code:  "INTERNAL_ERROR",
		})
	}

	if event == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "event not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainEvent(event))
}
