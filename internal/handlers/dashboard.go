// internal/handlers/dashboard.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rahulbala1799/TT/internal/services"
	"github.com/rahulbala1799/TT/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GET /stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to compute stats", err.Error())
		return
	}
	utils.OKResponse(c, stats)
}

// GET /stats/calendar?month=YYYY-MM
func (h *DashboardHandler) GetCalendar(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid month", "month must be formatted YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	days, err := h.dashboardService.Calendar(year, month)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to build calendar", err.Error())
		return
	}
	utils.OKResponse(c, days)
}
