package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"activity-feed-service/internal/app/service"
	"activity-feed-service/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	syncService *service.SyncService
	feedService *service.FeedService
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(syncSvc *service.SyncService, feedSvc *service.FeedService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		syncService: syncSvc,
		feedService: feedSvc,
		logger:      logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncSource handles POST /api/v1/admin/sync/:source
func (h *AdminHandler) SyncSource(c *fiber.Ctx) error {
	name := c.Params("source")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "source name is required",
			Code:  "MISSING_SOURCE",
		})
	}

	h.logger.Info("manual source sync triggered", zap.String("source", name))

	result, err := h.syncService.SyncSource(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "SYNC_FAILED",
		})
	}

	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "source not found",
			Code:  "SOURCE_NOT_FOUND",
		})
	}

	return c.JSON(dto.SyncResultResponse{
		Source:     result.Source,
		Activities: result.Activities,
		Events:     result.Events,
		Duration:   result.Duration.String(),
	})
}

// GetSources handles GET /api/v1/admin/sources
func (h *AdminHandler) GetSources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sources": h.syncService.SourceNames(),
	})
}

// ClearCache handles DELETE /api/v1/admin/cache
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	h.logger.Info("cache clear triggered")

	if err := h.feedService.ClearCache(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to clear cache",
			Code:  "CACHE_CLEAR_FAILED",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
