package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
)

// InquiryHandler handles inquiry management requests
type InquiryHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(db *gorm.DB, log *zap.Logger) *InquiryHandler {
	return &InquiryHandler{db: db, log: log}
}

// List returns inquiries, newest first.
// ?status= and ?inquirer_type= narrow the result.
func (h *InquiryHandler) List(c *gin.Context) {
	query := h.db.Preload("Property").Preload("Room")

	if status := c.Query("status"); status != "" {
		if !models.InquiryStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown inquiry status: " + status})
			return
		}
		query = query.Where("status = ?", status)
	}
	if inquirerType := c.Query("inquirer_type"); inquirerType != "" {
		if t := models.InquirerType(inquirerType); t != models.InquirerTypeTenant && t != models.InquirerTypeVisitor {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown inquirer type: " + inquirerType})
			return
		}
		query = query.Where("inquirer_type = ?", inquirerType)
	}

	var inquiries []models.Inquiry
	if err := query.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// Get returns a single inquiry
func (h *InquiryHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var inquiry models.Inquiry
	err := h.db.Preload("Property").Preload("Room").First(&inquiry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inquiry)
}

// Create registers an inquiry from the admin side (tenant inquiries
// phoned in and entered manually). Visitor inquiries arrive through
// the public endpoint instead.
func (h *InquiryHandler) Create(c *gin.Context) {
	var req struct {
		PropertyID   *string `json:"property_id"`
		RoomID       *string `json:"room_id"`
		TenantID     *string `json:"tenant_id"`
		InquirerType string  `json:"inquirer_type" binding:"required"`
		Name         string  `json:"name" binding:"required"`
		Email        string  `json:"email" binding:"required"`
		Phone        string  `json:"phone"`
		Subject      string  `json:"subject" binding:"required"`
		Message      string  `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquirerType := models.InquirerType(req.InquirerType)
	if inquirerType != models.InquirerTypeTenant && inquirerType != models.InquirerTypeVisitor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown inquirer type: " + req.InquirerType})
		return
	}

	inquiry := models.Inquiry{
		PropertyID:   req.PropertyID,
		RoomID:       req.RoomID,
		TenantID:     req.TenantID,
		InquirerType: inquirerType,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Subject:      req.Subject,
		Message:      req.Message,
		Status:       models.InquiryStatusNew,
	}
	if err := h.db.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}

// Respond records the response to an inquiry and moves its status
func (h *InquiryHandler) Respond(c *gin.Context) {
	id := c.Param("id")

	var inquiry models.Inquiry
	if err := h.db.First(&inquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Response string `json:"response" binding:"required"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.InquiryStatusResolved
	if req.Status != "" {
		status = models.InquiryStatus(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown inquiry status: " + req.Status})
			return
		}
	}

	now := time.Now()
	inquiry.Response = req.Response
	inquiry.RespondedAt = &now
	inquiry.Status = status

	if err := h.db.Save(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("inquiry responded",
		zap.String("inquiry_id", inquiry.ID),
		zap.String("status", string(inquiry.Status)))
	c.JSON(http.StatusOK, inquiry)
}

// UpdateStatus changes an inquiry's status without a response body
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var inquiry models.Inquiry
	if err := h.db.First(&inquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.InquiryStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown inquiry status: " + req.Status})
		return
	}

	inquiry.Status = status
	if err := h.db.Save(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inquiry)
}

// Delete removes an inquiry
func (h *InquiryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Delete(&models.Inquiry{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inquiry deleted"})
}
