package controller

import (
	"net/http"
	"strconv"

	"github.com/davitran/applyassist/internal/dto"
	"github.com/davitran/applyassist/internal/middleware"
	"github.com/davitran/applyassist/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats godoc
// @Summary Dashboard statistics for the current user
// @Description Totals, averages and the improvement trend. The improvement rate appears only after four completed sessions.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetStats: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compute dashboard statistics"})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GetHistory godoc
// @Summary Recent interview sessions
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Maximum number of sessions (default 10)"
// @Success 200 {object} dto.SessionHistoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/history [get]
func (c *DashboardController) GetHistory(ctx *gin.Context) {
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		value, err := strconv.Atoi(limitStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit format"})
			return
		}
		limit = value
	}

	history, err := c.dashboardService.GetHistory(middleware.UserID(ctx), limit)
	if err != nil {
		log.Error().Err(err).Msg("GetHistory: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve session history"})
		return
	}
	ctx.JSON(http.StatusOK, history)
}
