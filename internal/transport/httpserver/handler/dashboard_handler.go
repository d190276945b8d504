package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"activity-feed-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	feedService *service.FeedService
	logger      *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.FeedService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		feedService: svc,
		logger:      logger,
	}
}

// Render handles GET /dashboard
// Renders the ops dashboard using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	counts, err := h.feedService.Counts(c.Context())
	if err != nil {
		h.logger.Warn("dashboard stats unavailable", zap.Error(err))
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":         "Activity Feed Dashboard",
		"ActivityCount": counts.Activities,
		"EventCount":    counts.Events,
		"BySource":      counts.BySource,
	}, "layouts/base")
}
