package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guardrails/internal/services"
)

// StatsHandler serves dashboard statistics.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard handles the dashboard summary.
// @Summary     Dashboard statistics
// @Description Today's query totals, blocked count and the five most triggered hooks
// @Tags        stats
// @Produce     json
// @Success     200 {object} DashboardResponse "Statistics"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
