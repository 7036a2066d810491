package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/readlog/internal/database"
)

// StatsHandler serves the activity snapshot endpoint
type StatsHandler struct {
	stats *database.StatisticsRepository
}

// NewStatsHandler creates a new handler instance
func NewStatsHandler(stats *database.StatisticsRepository) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.stats.Collect(time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
