package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ukmstimbara/inventaris-api/internal/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// @Summary Dashboard Stats
// @Description Aggregate inventory, loan and user counts (admin only)
// @Tags Stats
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Security BearerAuth
// @Router /stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
