package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"property-portal/internal/auth"
	"property-portal/internal/cache"
	"property-portal/internal/models"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	db      *gorm.DB
	service *auth.Service
	tokens  *auth.TokenService
	cache   *cache.Cache
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, service *auth.Service, tokens *auth.TokenService, ch *cache.Cache) *AuthHandler {
	return &AuthHandler{db: db, service: service, tokens: tokens, cache: ch}
}

// Login authenticates an admin and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout revokes the current token until its natural expiry
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	token := auth.BearerToken(c)
	if claims == nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.cache.BlacklistToken(c.Request.Context(), token, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated admin's account
func (h *AuthHandler) Me(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var admin models.Admin
	if err := h.db.First(&admin, "id = ?", claims.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, admin)
}
