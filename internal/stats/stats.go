// Package stats computes the dashboard aggregates: occupancy rates
// per property and system-wide, pending inquiry counts and the
// current month's income/expense totals.
package stats

import (
	"math"
	"time"

	"property-portal/internal/models"

	"gorm.io/gorm"
)

// OccupancyRate returns the occupancy percentage rounded to the
// nearest integer. A portfolio of zero rooms has a rate of 0.
func OccupancyRate(totalRooms, vacantRooms int) int {
	if totalRooms <= 0 {
		return 0
	}
	return int(math.Round(float64(totalRooms-vacantRooms) / float64(totalRooms) * 100))
}

// MonthRange returns the first and last calendar day of the given
// year/month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// PropertyStat is the per-property breakdown shown on the dashboard.
type PropertyStat struct {
	PropertyID    string `json:"property_id"`
	PropertyName  string `json:"property_name"`
	TotalRooms    int    `json:"total_rooms"`
	VacantRooms   int    `json:"vacant_rooms"`
	OccupancyRate int    `json:"occupancy_rate"`
}

// Dashboard is the aggregate payload for the admin dashboard.
type Dashboard struct {
	TotalProperties  int            `json:"total_properties"`
	TotalRooms       int            `json:"total_rooms"`
	VacantRooms      int            `json:"vacant_rooms"`
	OccupiedRooms    int            `json:"occupied_rooms"`
	OccupancyRate    int            `json:"occupancy_rate"`
	PendingInquiries int64          `json:"pending_inquiries"`
	MonthlyIncome    int64          `json:"monthly_income"`
	MonthlyExpense   int64          `json:"monthly_expense"`
	MonthlyProfit    int64          `json:"monthly_profit"`
	PropertyStats    []PropertyStat `json:"property_stats"`
}

// Service aggregates dashboard statistics over the store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Dashboard builds the full dashboard payload. The month window for
// the finance totals is the calendar month containing now.
func (s *Service) Dashboard(now time.Time) (*Dashboard, error) {
	var properties []models.Property
	if err := s.db.Preload("Rooms").Order("name").Find(&properties).Error; err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalProperties: len(properties),
		PropertyStats:   make([]PropertyStat, 0, len(properties)),
	}

	for _, p := range properties {
		total := len(p.Rooms)
		vacant := 0
		for _, r := range p.Rooms {
			if r.Status == models.RoomStatusVacant {
				vacant++
			}
		}
		d.TotalRooms += total
		d.VacantRooms += vacant
		d.PropertyStats = append(d.PropertyStats, PropertyStat{
			PropertyID:    p.ID,
			PropertyName:  p.Name,
			TotalRooms:    total,
			VacantRooms:   vacant,
			OccupancyRate: OccupancyRate(total, vacant),
		})
	}
	d.OccupiedRooms = d.TotalRooms - d.VacantRooms
	d.OccupancyRate = OccupancyRate(d.TotalRooms, d.VacantRooms)

	if err := s.db.Model(&models.Inquiry{}).
		Where("status IN ?", []models.InquiryStatus{models.InquiryStatusNew, models.InquiryStatusInProgress}).
		Count(&d.PendingInquiries).Error; err != nil {
		return nil, err
	}

	first, last := MonthRange(now.Year(), now.Month(), now.Location())
	income, expense, err := s.MonthlyTotals(first, last)
	if err != nil {
		return nil, err
	}
	d.MonthlyIncome = income
	d.MonthlyExpense = expense
	d.MonthlyProfit = income - expense

	return d, nil
}

// MonthlyTotals sums finance amounts by type over [first, last].
func (s *Service) MonthlyTotals(first, last time.Time) (income, expense int64, err error) {
	type row struct {
		Type  models.FinanceType
		Total int64
	}
	var rows []row
	err = s.db.Model(&models.Finance{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Where("date >= ? AND date <= ?", first, last).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	for _, r := range rows {
		switch r.Type {
		case models.FinanceTypeIncome:
			income = r.Total
		case models.FinanceTypeExpense:
			expense = r.Total
		}
	}
	return income, expense, nil
}
