package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/finance"
	"property-portal/internal/models"
)

// FinanceHandler handles income and expense records
type FinanceHandler struct {
	db      *gorm.DB
	reports *finance.Service
	log     *zap.Logger
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(db *gorm.DB, reports *finance.Service, log *zap.Logger) *FinanceHandler {
	return &FinanceHandler{db: db, reports: reports, log: log}
}

func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// Monthly returns one month's entries together with the totals
func (h *FinanceHandler) Monthly(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	report, err := h.reports.MonthlyReport(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Export returns one month's report as an Excel workbook
func (h *FinanceHandler) Export(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	report, err := h.reports.MonthlyReport(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := report.Excel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("finance_%04d-%02d.xlsx", year, int(month))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Categories returns the selectable income and expense categories
func (h *FinanceHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  models.IncomeCategories,
		"expense": models.ExpenseCategories,
	})
}

// Create registers an income or expense record
func (h *FinanceHandler) Create(c *gin.Context) {
	var req struct {
		PropertyID  string  `json:"property_id" binding:"required"`
		RoomID      *string `json:"room_id"`
		Type        string  `json:"type" binding:"required"`
		Category    string  `json:"category" binding:"required"`
		Amount      int     `json:"amount" binding:"required"`
		Description string  `json:"description"`
		Date        string  `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	financeType := models.FinanceType(req.Type)
	if !financeType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown finance type: " + req.Type})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	entry := models.Finance{
		PropertyID:  req.PropertyID,
		RoomID:      req.RoomID,
		Type:        financeType,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("finance entry created",
		zap.String("finance_id", entry.ID),
		zap.String("type", string(entry.Type)),
		zap.Int("amount", entry.Amount))
	c.JSON(http.StatusCreated, entry)
}

// Update modifies an existing finance record
func (h *FinanceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var entry models.Finance
	if err := h.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "finance entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Type        *string `json:"type"`
		Category    *string `json:"category"`
		Amount      *int    `json:"amount"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != nil {
		financeType := models.FinanceType(*req.Type)
		if !financeType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown finance type: " + *req.Type})
			return
		}
		entry.Type = financeType
	}
	if req.Category != nil {
		entry.Category = *req.Category
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		entry.Amount = *req.Amount
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		entry.Date = d
	}

	if err := h.db.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes a finance record
func (h *FinanceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Delete(&models.Finance{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "finance entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "finance entry deleted"})
}
