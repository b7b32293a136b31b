package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/handlers"
	"property-portal/internal/models"
	"property-portal/internal/occupancy"
)

func newPropertyRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewPropertyHandler(db, nil, zap.NewNop())

	r := gin.New()
	r.GET("/api/properties/:id", h.Get)
	r.DELETE("/api/properties/:id", h.Delete)
	return r
}

func TestPropertyDeleteRejectsActiveTenants(t *testing.T) {
	db := setupTestDB(t)
	r := newPropertyRouter(t, db)
	room := seedVacantRoom(t, db)

	occ := occupancy.NewService(db, zap.NewNop())
	_, err := occ.MoveIn(occupancy.MoveInInput{
		RoomID:     room.ID,
		Name:       "山田太郎",
		MoveInDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/api/properties/"+room.PropertyID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPropertyDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	r := newPropertyRouter(t, db)
	room := seedVacantRoom(t, db)

	occ := occupancy.NewService(db, zap.NewNop())
	tenant, err := occ.MoveIn(occupancy.MoveInInput{
		RoomID:     room.ID,
		Name:       "山田太郎",
		MoveInDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = occ.MoveOut(tenant.ID, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	// 建物単位の問い合わせと、部屋だけに紐づく問い合わせの両方
	require.NoError(t, db.Create(&models.Inquiry{
		PropertyID:   &room.PropertyID,
		InquirerType: models.InquirerTypeVisitor,
		Name:         "内見希望者", Email: "visitor@example.com",
		Subject: "空室はありますか", Message: "m", Status: models.InquiryStatusNew,
	}).Error)
	require.NoError(t, db.Create(&models.Inquiry{
		RoomID:       &room.ID,
		InquirerType: models.InquirerTypeTenant,
		Name:         "山田太郎", Email: "yamada@example.com",
		Subject: "退去時の精算", Message: "m", Status: models.InquiryStatusResolved,
	}).Error)
	require.NoError(t, db.Create(&models.Finance{
		PropertyID: room.PropertyID, Type: models.FinanceTypeIncome,
		Category: "家賃", Amount: 60000,
		Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Create(&models.Maintenance{
		PropertyID: room.PropertyID, Title: "外壁塗装",
		Status: models.MaintenanceStatusPending, Priority: models.MaintenancePriorityLow,
		ReportedDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
	}).Error)

	w := doJSON(r, http.MethodDelete, "/api/properties/"+room.PropertyID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, model := range []interface{}{
		&models.Property{}, &models.Room{}, &models.Tenant{},
		&models.MoveHistory{}, &models.Maintenance{}, &models.Finance{},
		&models.Inquiry{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}
