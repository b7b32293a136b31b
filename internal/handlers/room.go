package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
	"property-portal/internal/occupancy"
	"property-portal/internal/search"
)

// RoomHandler handles room management requests
type RoomHandler struct {
	db        *gorm.DB
	occupancy *occupancy.Service
	search    *search.SearchClient
	log       *zap.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(db *gorm.DB, occ *occupancy.Service, sc *search.SearchClient, log *zap.Logger) *RoomHandler {
	return &RoomHandler{db: db, occupancy: occ, search: sc, log: log}
}

// ListByProperty returns the rooms of one property.
// ?status=vacant narrows the list, which the move-in form uses to
// offer only selectable rooms.
func (h *RoomHandler) ListByProperty(c *gin.Context) {
	propertyID := c.Param("id")

	query := h.db.Where("property_id = ?", propertyID)
	if status := c.Query("status"); status != "" {
		if !models.RoomStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room status: " + status})
			return
		}
		query = query.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := query.Order("room_number ASC").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// Get returns a single room with its property and current tenant
func (h *RoomHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var room models.Room
	err := h.db.Preload("Property").First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.occupancy.ActiveTenantForRoom(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":   room,
		"tenant": tenant,
	})
}

type roomRequest struct {
	RoomNumber    string   `json:"room_number" binding:"required"`
	Floor         *int     `json:"floor"`
	Rent          int      `json:"rent"`
	ManagementFee int      `json:"management_fee"`
	Deposit       int      `json:"deposit"`
	KeyMoney      int      `json:"key_money"`
	RoomType      string   `json:"room_type"`
	Area          *float64 `json:"area"`
	Status        string   `json:"status"`
	Description   string   `json:"description"`
}

// Create registers a new room under a property
func (h *RoomHandler) Create(c *gin.Context) {
	propertyID := c.Param("id")

	var property models.Property
	if err := h.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.RoomStatusVacant
	if req.Status != "" {
		status = models.RoomStatus(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room status: " + req.Status})
			return
		}
	}

	room := models.Room{
		PropertyID:    property.ID,
		RoomNumber:    req.RoomNumber,
		Floor:         req.Floor,
		Rent:          req.Rent,
		ManagementFee: req.ManagementFee,
		Deposit:       req.Deposit,
		KeyMoney:      req.KeyMoney,
		RoomType:      req.RoomType,
		Area:          req.Area,
		Status:        status,
		Description:   req.Description,
	}
	if err := h.db.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	syncRoomIndex(h.db, h.search, h.log, room.ID)

	h.log.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("property_id", property.ID),
		zap.String("room_number", room.RoomNumber))
	c.JSON(http.StatusCreated, room)
}

// Update modifies an existing room
func (h *RoomHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var room models.Room
	if err := h.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		RoomNumber    *string  `json:"room_number"`
		Floor         *int     `json:"floor"`
		Rent          *int     `json:"rent"`
		ManagementFee *int     `json:"management_fee"`
		Deposit       *int     `json:"deposit"`
		KeyMoney      *int     `json:"key_money"`
		RoomType      *string  `json:"room_type"`
		Area          *float64 `json:"area"`
		Status        *string  `json:"status"`
		Description   *string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		status := models.RoomStatus(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room status: " + *req.Status})
			return
		}
		// Occupancy is driven by move-in and move-out, so a manual
		// status change must not contradict the tenant records.
		if status != room.Status {
			tenant, err := h.occupancy.ActiveTenantForRoom(room.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if tenant != nil && status != models.RoomStatusOccupied {
				c.JSON(http.StatusConflict, gin.H{"error": "room has an active tenant; use move-out instead"})
				return
			}
			if tenant == nil && status == models.RoomStatusOccupied {
				c.JSON(http.StatusConflict, gin.H{"error": "room has no active tenant; use move-in instead"})
				return
			}
		}
		room.Status = status
	}

	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.Floor != nil {
		room.Floor = req.Floor
	}
	if req.Rent != nil {
		room.Rent = *req.Rent
	}
	if req.ManagementFee != nil {
		room.ManagementFee = *req.ManagementFee
	}
	if req.Deposit != nil {
		room.Deposit = *req.Deposit
	}
	if req.KeyMoney != nil {
		room.KeyMoney = *req.KeyMoney
	}
	if req.RoomType != nil {
		room.RoomType = *req.RoomType
	}
	if req.Area != nil {
		room.Area = req.Area
	}
	if req.Description != nil {
		room.Description = *req.Description
	}

	if err := h.db.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	syncRoomIndex(h.db, h.search, h.log, room.ID)
	c.JSON(http.StatusOK, room)
}

// Delete removes a room. Rooms with an active tenant cannot be deleted.
func (h *RoomHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var room models.Room
	if err := h.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.occupancy.ActiveTenantForRoom(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tenant != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "room has an active tenant"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.MoveHistory{}).Error; err != nil {
			return err
		}
		// 退去済み入居者や収支などの履歴は残し、部屋への参照だけ外す
		for _, model := range []interface{}{
			&models.Tenant{}, &models.Finance{}, &models.Maintenance{}, &models.Inquiry{},
		} {
			if err := tx.Model(model).Where("room_id = ?", room.ID).
				Update("room_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.search != nil {
		if err := h.search.RemoveListing(room.ID); err != nil {
			h.log.Warn("failed to remove listing", zap.String("room_id", room.ID), zap.Error(err))
		}
	}

	h.log.Info("room deleted", zap.String("room_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}
