package handlers

import (
	"creditdesk/internal/core/services"
	"creditdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dashboard returns aggregated portfolio statistics
// @Summary Admin dashboard
// @Description Aggregated loan portfolio statistics (Admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved", data)
}
