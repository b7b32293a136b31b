package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
	"property-portal/internal/search"
	"property-portal/internal/stats"
)

// PropertyHandler handles property management requests
type PropertyHandler struct {
	db     *gorm.DB
	search *search.SearchClient
	log    *zap.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(db *gorm.DB, sc *search.SearchClient, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{db: db, search: sc, log: log}
}

// List returns all properties with their rooms
func (h *PropertyHandler) List(c *gin.Context) {
	var properties []models.Property
	err := h.db.Preload("Rooms").Order("created_at DESC").Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type propertyWithStats struct {
		models.Property
		TotalRooms    int `json:"total_rooms"`
		VacantRooms   int `json:"vacant_rooms"`
		OccupancyRate int `json:"occupancy_rate"`
	}

	results := make([]propertyWithStats, 0, len(properties))
	for _, p := range properties {
		vacant := len(p.VacantRooms())
		results = append(results, propertyWithStats{
			Property:      p,
			TotalRooms:    len(p.Rooms),
			VacantRooms:   vacant,
			OccupancyRate: stats.OccupancyRate(len(p.Rooms), vacant),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": results,
		"count":      len(results),
	})
}

// Get returns a single property with its rooms
func (h *PropertyHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	err := h.db.Preload("Rooms").First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Create registers a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Address     string `json:"address" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := models.Property{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}
	if err := h.db.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("property created", zap.String("property_id", property.ID), zap.String("name", property.Name))
	c.JSON(http.StatusCreated, property)
}

// Update modifies an existing property
func (h *PropertyHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	if err := h.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Description != nil {
		property.Description = *req.Description
	}

	if err := h.db.Save(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Listing documents carry the property name and address, so any
	// vacant room under this property needs a refresh.
	var rooms []models.Room
	if err := h.db.Where("property_id = ?", property.ID).Find(&rooms).Error; err == nil {
		for _, r := range rooms {
			syncRoomIndex(h.db, h.search, h.log, r.ID)
		}
	}

	c.JSON(http.StatusOK, property)
}

// Delete removes a property together with its rooms and related records
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	if err := h.db.Preload("Rooms").First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Refuse deletion while tenants still live in the building
	var activeTenants int64
	roomIDs := make([]string, 0, len(property.Rooms))
	for _, r := range property.Rooms {
		roomIDs = append(roomIDs, r.ID)
	}
	if len(roomIDs) > 0 {
		err := h.db.Model(&models.Tenant{}).
			Where("room_id IN ? AND move_out_date IS NULL", roomIDs).
			Count(&activeTenants).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if activeTenants > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "property still has active tenants"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if len(roomIDs) > 0 {
			if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.MoveHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.Tenant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.Inquiry{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Maintenance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Inquiry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Finance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.search != nil {
		for _, roomID := range roomIDs {
			if err := h.search.RemoveListing(roomID); err != nil {
				h.log.Warn("failed to remove listing", zap.String("room_id", roomID), zap.Error(err))
			}
		}
	}

	h.log.Info("property deleted", zap.String("property_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
