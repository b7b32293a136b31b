package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/cache"
	"property-portal/internal/models"
	"property-portal/internal/occupancy"
	"property-portal/internal/search"
)

// TenantHandler handles tenant and occupancy lifecycle requests
type TenantHandler struct {
	db        *gorm.DB
	occupancy *occupancy.Service
	search    *search.SearchClient
	cache     *cache.Cache
	log       *zap.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(db *gorm.DB, occ *occupancy.Service, sc *search.SearchClient, ch *cache.Cache, log *zap.Logger) *TenantHandler {
	return &TenantHandler{db: db, occupancy: occ, search: sc, cache: ch, log: log}
}

// List returns tenants. ?active=true narrows to current tenants,
// ?room_id= narrows to one room.
func (h *TenantHandler) List(c *gin.Context) {
	query := h.db.Preload("Room").Preload("Room.Property")

	if c.Query("active") == "true" {
		query = query.Where("move_out_date IS NULL")
	}
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}

	var tenants []models.Tenant
	if err := query.Order("created_at DESC").Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenants": tenants,
		"count":   len(tenants),
	})
}

// Get returns a single tenant
func (h *TenantHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var tenant models.Tenant
	err := h.db.Preload("Room").Preload("Room.Property").First(&tenant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// Update modifies tenant contact and contract details. Room and
// move-out date are managed through move-in/move-out, not here.
func (h *TenantHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var tenant models.Tenant
	if err := h.db.First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Name              *string `json:"name"`
		NameKana          *string `json:"name_kana"`
		Email             *string `json:"email"`
		Phone             *string `json:"phone"`
		EmergencyContact  *string `json:"emergency_contact"`
		EmergencyPhone    *string `json:"emergency_phone"`
		ContractStartDate *string `json:"contract_start_date"`
		ContractEndDate   *string `json:"contract_end_date"`
		Notes             *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		tenant.Name = *req.Name
	}
	if req.NameKana != nil {
		tenant.NameKana = *req.NameKana
	}
	if req.Email != nil {
		tenant.Email = *req.Email
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.EmergencyContact != nil {
		tenant.EmergencyContact = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		tenant.EmergencyPhone = *req.EmergencyPhone
	}
	if req.ContractStartDate != nil {
		d, err := parseDate(*req.ContractStartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_start_date"})
			return
		}
		tenant.ContractStartDate = d
	}
	if req.ContractEndDate != nil {
		d, err := parseDate(*req.ContractEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_end_date"})
			return
		}
		tenant.ContractEndDate = d
	}
	if req.Notes != nil {
		tenant.Notes = *req.Notes
	}

	if err := h.db.Save(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// MoveIn registers a tenant into a vacant room
func (h *TenantHandler) MoveIn(c *gin.Context) {
	var req struct {
		RoomID            string `json:"room_id"`
		Name              string `json:"name" binding:"required"`
		NameKana          string `json:"name_kana"`
		Email             string `json:"email"`
		Phone             string `json:"phone"`
		EmergencyContact  string `json:"emergency_contact"`
		EmergencyPhone    string `json:"emergency_phone"`
		MoveInDate        string `json:"move_in_date" binding:"required"`
		ContractStartDate string `json:"contract_start_date"`
		ContractEndDate   string `json:"contract_end_date"`
		Notes             string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moveInDate, err := parseDate(req.MoveInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid move_in_date"})
		return
	}

	input := occupancy.MoveInInput{
		RoomID:           req.RoomID,
		Name:             req.Name,
		NameKana:         req.NameKana,
		Email:            req.Email,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		MoveInDate:       moveInDate,
		Notes:            req.Notes,
	}
	if req.ContractStartDate != "" {
		d, err := parseDate(req.ContractStartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_start_date"})
			return
		}
		input.ContractStartDate = &d
	}
	if req.ContractEndDate != "" {
		d, err := parseDate(req.ContractEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_end_date"})
			return
		}
		input.ContractEndDate = &d
	}

	tenant, err := h.occupancy.MoveIn(input)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, occupancy.ErrRoomNotVacant):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, occupancy.ErrNameRequired), errors.Is(err, occupancy.ErrDateRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if tenant.RoomID != nil {
		syncRoomIndex(h.db, h.search, h.log, *tenant.RoomID)
	}
	h.cache.InvalidateDashboard(c.Request.Context())

	c.JSON(http.StatusCreated, tenant)
}

// MoveOut records a tenant's move-out and frees the room
func (h *TenantHandler) MoveOut(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		MoveOutDate string `json:"move_out_date" binding:"required"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moveOutDate, err := parseDate(req.MoveOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid move_out_date"})
		return
	}

	tenant, err := h.occupancy.MoveOut(id, moveOutDate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, occupancy.ErrTenantNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, occupancy.ErrDateRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if tenant.RoomID != nil {
		syncRoomIndex(h.db, h.search, h.log, *tenant.RoomID)
	}
	h.cache.InvalidateDashboard(c.Request.Context())

	c.JSON(http.StatusOK, tenant)
}

// Delete removes a tenant record entirely. If the tenant is still
// active the room is freed, same as a move-out would.
func (h *TenantHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	roomID, err := h.occupancy.DeleteTenant(id)
	if err != nil {
		if errors.Is(err, occupancy.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if roomID != "" {
		syncRoomIndex(h.db, h.search, h.log, roomID)
	}
	h.cache.InvalidateDashboard(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "tenant deleted"})
}
