package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/auth"
	"property-portal/internal/models"
)

// AdminAccountHandler manages admin accounts. Routes using it are
// restricted to super admins.
type AdminAccountHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAdminAccountHandler creates a new admin account handler
func NewAdminAccountHandler(db *gorm.DB, log *zap.Logger) *AdminAccountHandler {
	return &AdminAccountHandler{db: db, log: log}
}

// List returns all admin accounts
func (h *AdminAccountHandler) List(c *gin.Context) {
	var admins []models.Admin
	if err := h.db.Order("created_at DESC").Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admins": admins,
		"count":  len(admins),
	})
}

// Create registers a new admin account
func (h *AdminAccountHandler) Create(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.AdminRoleAdmin
	if req.Role != "" {
		role = models.AdminRole(req.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role: " + req.Role})
			return
		}
	}

	var existing int64
	if err := h.db.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email is already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	admin := models.Admin{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := h.db.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("admin account created",
		zap.String("admin_id", admin.ID),
		zap.String("role", string(admin.Role)))
	c.JSON(http.StatusCreated, admin)
}

// Update modifies an admin account
func (h *AdminAccountHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var admin models.Admin
	if err := h.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		admin.PasswordHash = hash
	}
	if req.Role != nil {
		role := models.AdminRole(*req.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role: " + *req.Role})
			return
		}
		admin.Role = role
	}

	if err := h.db.Save(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admin)
}

// Delete removes an admin account. Admins cannot delete themselves.
func (h *AdminAccountHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	claims := auth.ClaimsFrom(c)
	if claims != nil && claims.AdminID == id {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot delete your own account"})
		return
	}

	result := h.db.Delete(&models.Admin{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
		return
	}

	h.log.Info("admin account deleted", zap.String("admin_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "admin deleted"})
}
