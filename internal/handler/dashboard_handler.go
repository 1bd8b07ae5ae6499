package handler

import (
	"go-warehouse/internal/middleware"
	"go-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboard returns the role-specific overview
// GET /dashboard
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	stats, err := h.service.GetStats(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(fiber.Map{
		"user":  user.ToResponse(),
		"stats": stats,
	})
}
