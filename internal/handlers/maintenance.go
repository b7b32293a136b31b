package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
)

// MaintenanceHandler handles maintenance ticket requests
type MaintenanceHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(db *gorm.DB, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{db: db, log: log}
}

// List returns maintenance tickets, newest first.
// ?status= and ?property_id= narrow the result.
func (h *MaintenanceHandler) List(c *gin.Context) {
	query := h.db.Preload("Property").Preload("Room")

	if status := c.Query("status"); status != "" {
		if !models.MaintenanceStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown maintenance status: " + status})
			return
		}
		query = query.Where("status = ?", status)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var items []models.Maintenance
	if err := query.Order("reported_date DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"maintenances": items,
		"count":        len(items),
	})
}

// Get returns a single maintenance ticket
func (h *MaintenanceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var item models.Maintenance
	err := h.db.Preload("Property").Preload("Room").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "maintenance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create registers a new maintenance ticket
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req struct {
		PropertyID    string  `json:"property_id" binding:"required"`
		RoomID        *string `json:"room_id"`
		Title         string  `json:"title" binding:"required"`
		Description   string  `json:"description"`
		Status        string  `json:"status"`
		Priority      string  `json:"priority"`
		Cost          *int    `json:"cost"`
		ReportedDate  string  `json:"reported_date" binding:"required"`
		ScheduledDate *string `json:"scheduled_date"`
		Contractor    string  `json:"contractor"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportedDate, err := parseDate(req.ReportedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reported_date"})
		return
	}

	status := models.MaintenanceStatusPending
	if req.Status != "" {
		status = models.MaintenanceStatus(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown maintenance status: " + req.Status})
			return
		}
	}
	priority := models.MaintenancePriorityMedium
	if req.Priority != "" {
		priority = models.MaintenancePriority(req.Priority)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority: " + req.Priority})
			return
		}
	}

	item := models.Maintenance{
		PropertyID:   req.PropertyID,
		RoomID:       req.RoomID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		Cost:         req.Cost,
		ReportedDate: reportedDate,
		Contractor:   req.Contractor,
		Notes:        req.Notes,
	}
	if req.ScheduledDate != nil {
		d, err := parseDate(*req.ScheduledDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_date"})
			return
		}
		item.ScheduledDate = &d
	}

	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("maintenance created",
		zap.String("maintenance_id", item.ID),
		zap.String("property_id", item.PropertyID),
		zap.String("priority", string(item.Priority)))
	c.JSON(http.StatusCreated, item)
}

// Update modifies an existing maintenance ticket
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var item models.Maintenance
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "maintenance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		Status        *string `json:"status"`
		Priority      *string `json:"priority"`
		Cost          *int    `json:"cost"`
		ScheduledDate *string `json:"scheduled_date"`
		CompletedDate *string `json:"completed_date"`
		Contractor    *string `json:"contractor"`
		Notes         *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		status := models.MaintenanceStatus(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown maintenance status: " + *req.Status})
			return
		}
		item.Status = status
	}
	if req.Priority != nil {
		priority := models.MaintenancePriority(*req.Priority)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority: " + *req.Priority})
			return
		}
		item.Priority = priority
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Cost != nil {
		item.Cost = req.Cost
	}
	if req.ScheduledDate != nil {
		d, err := parseDate(*req.ScheduledDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_date"})
			return
		}
		item.ScheduledDate = &d
	}
	if req.CompletedDate != nil {
		d, err := parseDate(*req.CompletedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_date"})
			return
		}
		item.CompletedDate = &d
		// A ticket with a completion date is completed unless the
		// caller set the status explicitly in the same request.
		if req.Status == nil {
			item.Status = models.MaintenanceStatusCompleted
		}
	}
	if req.Contractor != nil {
		item.Contractor = *req.Contractor
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes a maintenance ticket
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Delete(&models.Maintenance{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "maintenance not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "maintenance deleted"})
}
