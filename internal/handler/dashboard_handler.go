package handler

import (
	"net/http"

	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the admin landing-page counters.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary godoc
// GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
