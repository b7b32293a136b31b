// Package finance builds the monthly income/expense report and its
// Excel export.
package finance

import (
	"fmt"
	"time"

	"property-portal/internal/models"
	"property-portal/internal/stats"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// MonthlyReport groups a month's finance entries with their totals.
type MonthlyReport struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Entries []models.Finance `json:"entries"`
	Income  int64            `json:"income"`
	Expense int64            `json:"expense"`
	Profit  int64            `json:"profit"`
}

// Service builds finance reports over the store.
type Service struct {
	db  *gorm.DB
	loc *time.Location
}

func NewService(db *gorm.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{db: db, loc: loc}
}

// MonthlyReport loads all finance entries inside the calendar month
// and computes the income/expense/profit totals.
func (s *Service) MonthlyReport(year int, month time.Month) (*MonthlyReport, error) {
	first, last := stats.MonthRange(year, month, s.loc)

	var entries []models.Finance
	err := s.db.Preload("Property").Preload("Room").
		Where("date >= ? AND date <= ?", first, last).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:    year,
		Month:   int(month),
		Entries: entries,
	}
	for _, e := range entries {
		switch e.Type {
		case models.FinanceTypeIncome:
			report.Income += int64(e.Amount)
		case models.FinanceTypeExpense:
			report.Expense += int64(e.Amount)
		}
	}
	report.Profit = report.Income - report.Expense
	return report, nil
}

// 収支エクスポートの表頭
var exportHeader = []string{"日付", "種別", "カテゴリ", "物件", "部屋", "金額", "摘要"}

// Excel renders the report as an xlsx workbook.
func (r *MonthlyReport) Excel() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%d-%02d", r.Year, r.Month)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, err
	}

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	typeLabel := map[models.FinanceType]string{
		models.FinanceTypeIncome:  "収入",
		models.FinanceTypeExpense: "支出",
	}

	for i, e := range r.Entries {
		rowNum := i + 2
		propertyName := ""
		if e.Property != nil {
			propertyName = e.Property.Name
		}
		roomNumber := ""
		if e.Room != nil {
			roomNumber = e.Room.RoomNumber
		}
		values := []interface{}{
			e.Date.Format("2006-01-02"),
			typeLabel[e.Type],
			e.Category,
			propertyName,
			roomNumber,
			e.Amount,
			e.Description,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// 末尾に集計行
	summaryRow := len(r.Entries) + 3
	summary := [][2]interface{}{
		{"収入合計", r.Income},
		{"支出合計", r.Expense},
		{"収支", r.Profit},
	}
	for i, s := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow+i)
		if err := f.SetCellValue(sheet, labelCell, s[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, valueCell, s[1]); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
