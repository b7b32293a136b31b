package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-portal/internal/cache"
	"property-portal/internal/stats"
)

// DashboardHandler serves the admin dashboard statistics
type DashboardHandler struct {
	stats *stats.Service
	cache *cache.Cache
	loc   *time.Location
	log   *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(statsService *stats.Service, ch *cache.Cache, loc *time.Location, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{stats: statsService, cache: ch, loc: loc, log: log}
}

// Get returns the dashboard statistics, cached for a few minutes when
// Redis is available. ?refresh=true bypasses the cache.
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("refresh") != "true" {
		var cached stats.Dashboard
		hit, err := h.cache.GetDashboard(ctx, &cached)
		if err != nil {
			h.log.Warn("dashboard cache read failed", zap.Error(err))
		}
		if hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	dashboard, err := h.stats.Dashboard(time.Now().In(h.loc))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.cache.SetDashboard(ctx, dashboard); err != nil {
		h.log.Warn("dashboard cache write failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, dashboard)
}
