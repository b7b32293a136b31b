package finance_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"property-portal/internal/database"
	"property-portal/internal/finance"
	"property-portal/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(db))
	return db
}

func seedEntries(t *testing.T, db *gorm.DB) *models.Property {
	property := models.Property{Name: "メゾン青葉", Address: "横浜市青葉区"}
	require.NoError(t, db.Create(&property).Error)

	entries := []models.Finance{
		{PropertyID: property.ID, Type: models.FinanceTypeIncome, Category: "家賃", Amount: 80000, Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{PropertyID: property.ID, Type: models.FinanceTypeIncome, Category: "礼金", Amount: 80000, Date: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)},
		{PropertyID: property.ID, Type: models.FinanceTypeExpense, Category: "清掃費", Amount: 15000, Date: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)},
		// Previous month, excluded
		{PropertyID: property.ID, Type: models.FinanceTypeIncome, Category: "家賃", Amount: 80000, Date: time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}
	return &property
}

func TestMonthlyReport(t *testing.T) {
	db := setupTestDB(t)
	seedEntries(t, db)
	svc := finance.NewService(db, time.UTC)

	report, err := svc.MonthlyReport(2026, time.May)
	require.NoError(t, err)

	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, 5, report.Month)
	assert.Len(t, report.Entries, 3)
	assert.Equal(t, int64(160000), report.Income)
	assert.Equal(t, int64(15000), report.Expense)
	assert.Equal(t, int64(145000), report.Profit)

	// Entries are newest first
	assert.Equal(t, 20, report.Entries[0].Date.Day())
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	db := setupTestDB(t)
	seedEntries(t, db)
	svc := finance.NewService(db, time.UTC)

	report, err := svc.MonthlyReport(2026, time.January)
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Equal(t, int64(0), report.Profit)
}

func TestExcelExport(t *testing.T) {
	db := setupTestDB(t)
	seedEntries(t, db)
	svc := finance.NewService(db, time.UTC)

	report, err := svc.MonthlyReport(2026, time.May)
	require.NoError(t, err)

	data, err := report.Excel()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// The workbook must open and contain the report sheet
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := "2026-05"
	assert.Contains(t, f.GetSheetList(), sheet)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "日付", header)

	// Summary rows follow the entries
	label, err := f.GetCellValue(sheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "収入合計", label)

	profit, err := f.GetCellValue(sheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "145000", profit)
}
