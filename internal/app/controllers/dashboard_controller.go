package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/app/services"
	"github.com/studybuddy/backend/internal/middleware"
)

// DashboardController handles the signed-in landing view
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard: the caller's enrolled courses and
// the next five upcoming sessions.
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	resp, err := c.dashboardService.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
