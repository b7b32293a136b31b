package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-portal/internal/scheduler"
)

// SystemHandler serves health and cron endpoints
type SystemHandler struct {
	scheduler  *scheduler.Scheduler
	cronSecret string
	log        *zap.Logger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(sched *scheduler.Scheduler, cronSecret string, log *zap.Logger) *SystemHandler {
	return &SystemHandler{scheduler: sched, cronSecret: cronSecret, log: log}
}

// Health is a liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// KeepAlive is the endpoint an external cron service calls to keep a
// managed database instance from being paused. It requires the shared
// cron secret as a bearer token.
func (h *SystemHandler) KeepAlive(c *gin.Context) {
	if h.cronSecret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cron secret not configured"})
		return
	}

	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token != h.cronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.scheduler.RunKeepAlive()
	if err != nil {
		h.log.Error("keep-alive failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reindex manually rebuilds the vacancy search index
func (h *SystemHandler) Reindex(c *gin.Context) {
	go func() {
		if err := h.scheduler.RunReindex(); err != nil {
			h.log.Error("manual reindex failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "reindex started"})
}
