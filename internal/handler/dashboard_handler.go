package handler

import (
	"errors"

	"go-pos-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultChartDays = 7

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDailySales returns the continuous sales series of the chart.
// Query params: days (1-90, default 7)
func (h *DashboardHandler) GetDailySales(c *fiber.Ctx) error {
	series, err := h.service.DailySeries(c.QueryInt("days", defaultChartDays))
	switch {
	case errors.Is(err, service.ErrInvalidDays):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily sales"})
	}
	return c.JSON(series)
}

// GetDashboardStats returns the stats panel, with bolívar figures once a rate exists.
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	overview, err := h.service.Overview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(overview)
}
