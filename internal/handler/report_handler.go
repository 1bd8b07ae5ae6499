package handler

import (
	"go-warehouse/internal/middleware"
	"go-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetReports serves the report page data
// GET /reports?type=daily|products|suppliers|staff
func (h *ReportHandler) GetReports(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	report, err := h.service.GetReport(user, c.Query("type", "daily"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}

	return c.JSON(report)
}

// GetStats returns monthly in/out totals for dashboard charting
// GET /api/stats
func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetMonthlyStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(stats)
}

// GetPendingCount returns approval-queue counters for badge polling.
// Anonymous callers get zeros rather than a redirect.
// GET /api/pending-count
func (h *ReportHandler) GetPendingCount(c *fiber.Ctx) error {
	counts, err := h.service.GetPendingCounts(middleware.CurrentUser(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pending counts"})
	}

	return c.JSON(counts)
}
