package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
	"property-portal/internal/search"
)

// PublicHandler serves the unauthenticated listing site: vacant room
// search, property pages and visitor inquiries.
type PublicHandler struct {
	db     *gorm.DB
	search *search.SearchClient
	log    *zap.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(db *gorm.DB, sc *search.SearchClient, log *zap.Logger) *PublicHandler {
	return &PublicHandler{db: db, search: sc, log: log}
}

// SearchVacancies searches vacant rooms. Meilisearch serves the query
// when configured; otherwise the database answers directly.
func (h *PublicHandler) SearchVacancies(c *gin.Context) {
	params := search.FilterParams{
		Query:      c.Query("q"),
		PropertyID: c.Query("property_id"),
		SortBy:     c.Query("sort"),
	}

	if v := c.Query("min_rent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rent"})
			return
		}
		params.MinRent = &n
	}
	if v := c.Query("max_rent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_rent"})
			return
		}
		params.MaxRent = &n
	}
	if v := c.Query("room_types"); v != "" {
		params.RoomTypes = strings.Split(v, ",")
	}
	if v := c.Query("max_floor"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_floor"})
			return
		}
		params.MaxFloor = &n
	}
	if v := c.Query("min_area"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_area"})
			return
		}
		params.MinArea = &f
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		params.Limit = n
	}

	if h.search != nil {
		listings, err := h.search.FilterSearch(params)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"listings": listings,
				"count":    len(listings),
				"source":   "search",
			})
			return
		}
		h.log.Warn("search backend failed, falling back to database", zap.Error(err))
	}

	listings, err := h.searchVacanciesDB(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
		"source":   "database",
	})
}

// searchVacanciesDB answers a vacancy search straight from the
// database. Free-text matching is cruder than Meilisearch but the
// filters behave the same.
func (h *PublicHandler) searchVacanciesDB(params search.FilterParams) ([]search.Listing, error) {
	query := h.db.Preload("Property").Where("status = ?", models.RoomStatusVacant)

	if params.PropertyID != "" {
		query = query.Where("property_id = ?", params.PropertyID)
	}
	if params.MinRent != nil {
		query = query.Where("rent >= ?", *params.MinRent)
	}
	if params.MaxRent != nil {
		query = query.Where("rent <= ?", *params.MaxRent)
	}
	if len(params.RoomTypes) > 0 {
		query = query.Where("room_type IN ?", params.RoomTypes)
	}
	if params.MaxFloor != nil {
		query = query.Where("floor <= ?", *params.MaxFloor)
	}
	if params.MinArea != nil {
		query = query.Where("area >= ?", *params.MinArea)
	}
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		query = query.Where(
			"room_number LIKE ? OR room_type LIKE ? OR description LIKE ? OR property_id IN (?)",
			pattern, pattern, pattern,
			h.db.Model(&models.Property{}).Select("id").
				Where("name LIKE ? OR address LIKE ?", pattern, pattern),
		)
	}

	switch params.SortBy {
	case "rent_asc":
		query = query.Order("rent ASC")
	case "rent_desc":
		query = query.Order("rent DESC")
	case "area_desc":
		query = query.Order("area DESC")
	default:
		query = query.Order("rent ASC")
	}

	limit := params.Limit
	if limit == 0 {
		limit = 20
	}

	var rooms []models.Room
	if err := query.Limit(int(limit)).Find(&rooms).Error; err != nil {
		return nil, err
	}

	listings := make([]search.Listing, 0, len(rooms))
	for i := range rooms {
		listings = append(listings, search.NewListing(&rooms[i], rooms[i].Property))
	}
	return listings, nil
}

// GetProperty returns a property page for the public site. Only
// vacant rooms are exposed.
func (h *PublicHandler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	err := h.db.Preload("Rooms", "status = ?", models.RoomStatusVacant).
		First(&property, "id = ?", id).Error
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

// CreateInquiry accepts a visitor inquiry from the public site
func (h *PublicHandler) CreateInquiry(c *gin.Context) {
	var req struct {
		PropertyID *string `json:"property_id"`
		RoomID     *string `json:"room_id"`
		Name       string  `json:"name" binding:"required"`
		Email      string  `json:"email" binding:"required,email"`
		Phone      string  `json:"phone"`
		Subject    string  `json:"subject" binding:"required"`
		Message    string  `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RoomID != nil {
		var room models.Room
		if err := h.db.First(&room, "id = ?", *req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if req.PropertyID == nil {
			req.PropertyID = &room.PropertyID
		}
	}

	inquiry := models.Inquiry{
		PropertyID:   req.PropertyID,
		RoomID:       req.RoomID,
		InquirerType: models.InquirerTypeVisitor,
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

	h.log.Info("visitor inquiry received",
		zap.String("inquiry_id", inquiry.ID),
		zap.String("subject", inquiry.Subject))
	c.JSON(http.StatusCreated, gin.H{
		"message": "お問い合わせを受け付けました",
		"id":      inquiry.ID,
	})
}
