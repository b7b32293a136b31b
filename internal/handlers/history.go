package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"property-portal/internal/models"
)

// HistoryHandler serves the append-only move history
type HistoryHandler struct {
	db *gorm.DB
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(db *gorm.DB) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// List returns move history entries, newest first.
// ?room_id= and ?tenant_id= narrow the result.
func (h *HistoryHandler) List(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}

	query := h.db.Preload("Room").Preload("Tenant")
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var histories []models.MoveHistory
	err = query.Order("move_date DESC, created_at DESC").Limit(limit).Find(&histories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"histories": histories,
		"count":     len(histories),
	})
}
