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

func newRoomRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	occ := occupancy.NewService(db, zap.NewNop())
	h := handlers.NewRoomHandler(db, occ, nil, zap.NewNop())

	r := gin.New()
	r.GET("/api/rooms/:id", h.Get)
	r.DELETE("/api/rooms/:id", h.Delete)
	return r
}

func TestRoomDeleteRejectsActiveTenant(t *testing.T) {
	db := setupTestDB(t)
	r := newRoomRouter(t, db)
	room := seedVacantRoom(t, db)

	occ := occupancy.NewService(db, zap.NewNop())
	_, err := occ.MoveIn(occupancy.MoveInInput{
		RoomID:     room.ID,
		Name:       "山田太郎",
		MoveInDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/api/rooms/"+room.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRoomDeleteClearsFormerReferences(t *testing.T) {
	db := setupTestDB(t)
	r := newRoomRouter(t, db)
	room := seedVacantRoom(t, db)

	// 過去に入退去のあった部屋に、部屋単位の収支・修繕・問い合わせが紐づく
	occ := occupancy.NewService(db, zap.NewNop())
	tenant, err := occ.MoveIn(occupancy.MoveInInput{
		RoomID:     room.ID,
		Name:       "山田太郎",
		MoveInDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = occ.MoveOut(tenant.ID, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	finance := models.Finance{
		PropertyID: room.PropertyID, RoomID: &room.ID,
		Type: models.FinanceTypeIncome, Category: "家賃", Amount: 60000,
		Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&finance).Error)
	maintenance := models.Maintenance{
		PropertyID: room.PropertyID, RoomID: &room.ID,
		Title: "エアコン修理", Status: models.MaintenanceStatusCompleted,
		Priority: models.MaintenancePriorityMedium,
		ReportedDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&maintenance).Error)
	inquiry := models.Inquiry{
		PropertyID: &room.PropertyID, RoomID: &room.ID,
		InquirerType: models.InquirerTypeVisitor,
		Name:         "内見希望者", Email: "visitor@example.com",
		Subject: "内見希望", Message: "101号室を見たいです",
		Status:  models.InquiryStatusResolved,
	}
	require.NoError(t, db.Create(&inquiry).Error)

	w := doJSON(r, http.MethodDelete, "/api/rooms/"+room.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rooms int64
	db.Model(&models.Room{}).Where("id = ?", room.ID).Count(&rooms)
	assert.Equal(t, int64(0), rooms)

	// 退去済み入居者と周辺レコードは残り、部屋への参照だけ外れる
	var former models.Tenant
	require.NoError(t, db.First(&former, "id = ?", tenant.ID).Error)
	assert.Nil(t, former.RoomID)

	var keptFinance models.Finance
	require.NoError(t, db.First(&keptFinance, "id = ?", finance.ID).Error)
	assert.Nil(t, keptFinance.RoomID)

	var keptMaintenance models.Maintenance
	require.NoError(t, db.First(&keptMaintenance, "id = ?", maintenance.ID).Error)
	assert.Nil(t, keptMaintenance.RoomID)

	var keptInquiry models.Inquiry
	require.NoError(t, db.First(&keptInquiry, "id = ?", inquiry.ID).Error)
	assert.Nil(t, keptInquiry.RoomID)

	var histories int64
	db.Model(&models.MoveHistory{}).Where("room_id = ?", room.ID).Count(&histories)
	assert.Equal(t, int64(0), histories)
}
