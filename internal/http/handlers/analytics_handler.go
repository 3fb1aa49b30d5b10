package handlers

import (
	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

// GET /cart-analytics. Public; the dashboard re-pulls it on every change
// signal and on a timer.
func (h *AnalyticsHandler) CartAnalytics(c *fiber.Ctx) error {
	ranked, err := h.Analytics.MostAdded()
	if err != nil {
		applog.Error(c, "analytics.cart.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Database error")
	}
	return c.JSON(ranked)
}
