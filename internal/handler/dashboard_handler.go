package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/service"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

// DashboardHandler exposes the landing-page summary.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @Summary Admin dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.dashboard.Summary(), nil)
}
