package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"property-portal/internal/cache"
	"property-portal/internal/database"
	"property-portal/internal/handlers"
	"property-portal/internal/models"
	"property-portal/internal/occupancy"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(db))
	return db
}

func newTenantRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	occ := occupancy.NewService(db, zap.NewNop())
	h := handlers.NewTenantHandler(db, occ, nil, cache.Disabled(), zap.NewNop())

	r := gin.New()
	r.GET("/api/tenants", h.List)
	r.POST("/api/tenants/move-in", h.MoveIn)
	r.POST("/api/tenants/:id/move-out", h.MoveOut)
	r.DELETE("/api/tenants/:id", h.Delete)
	return r
}

func seedVacantRoom(t *testing.T, db *gorm.DB) *models.Room {
	property := models.Property{Name: "テストハウス", Address: "東京都"}
	require.NoError(t, db.Create(&property).Error)
	room := models.Room{PropertyID: property.ID, RoomNumber: "101", Rent: 60000, Status: models.RoomStatusVacant}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMoveInEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := newTenantRouter(t, db)
	room := seedVacantRoom(t, db)

	w := doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "山田太郎",
		"move_in_date": "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var tenant models.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tenant))
	require.NotNil(t, tenant.RoomID)
	assert.Equal(t, room.ID, *tenant.RoomID)

	var updated models.Room
	require.NoError(t, db.First(&updated, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status)
}

func TestMoveInEndpointValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newTenantRouter(t, db)
	room := seedVacantRoom(t, db)

	// Missing name
	w := doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"move_in_date": "2026-04-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad date
	w = doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "山田太郎",
		"move_in_date": "April 1st",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown room
	w = doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      "missing",
		"name":         "山田太郎",
		"move_in_date": "2026-04-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveInEndpointConflict(t *testing.T) {
	db := setupTestDB(t)
	r := newTenantRouter(t, db)
	room := seedVacantRoom(t, db)

	w := doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "先住者",
		"move_in_date": "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "二人目",
		"move_in_date": "2026-04-02",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMoveOutEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := newTenantRouter(t, db)
	room := seedVacantRoom(t, db)

	w := doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "山田太郎",
		"move_in_date": "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var tenant models.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tenant))

	w = doJSON(r, http.MethodPost, "/api/tenants/"+tenant.ID+"/move-out", gin.H{
		"move_out_date": "2026-09-30",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Room
	require.NoError(t, db.First(&updated, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusVacant, updated.Status)

	// Second move-out is a conflict
	w = doJSON(r, http.MethodPost, "/api/tenants/"+tenant.ID+"/move-out", gin.H{
		"move_out_date": "2026-10-01",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteTenantEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := newTenantRouter(t, db)
	room := seedVacantRoom(t, db)

	w := doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "山田太郎",
		"move_in_date": "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var tenant models.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tenant))

	w = doJSON(r, http.MethodDelete, "/api/tenants/"+tenant.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Room
	require.NoError(t, db.First(&updated, "id = ?", room.ID).Error)
	assert.Equal(t, models.RoomStatusVacant, updated.Status)

	w = doJSON(r, http.MethodDelete, "/api/tenants/"+tenant.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTenantsActiveFilter(t *testing.T) {
	db := setupTestDB(t)
	r := newTenantRouter(t, db)
	room := seedVacantRoom(t, db)

	w := doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "一人目",
		"move_in_date": "2026-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var first models.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = doJSON(r, http.MethodPost, "/api/tenants/"+first.ID+"/move-out", gin.H{
		"move_out_date": "2026-03-31",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/tenants/move-in", gin.H{
		"room_id":      room.ID,
		"name":         "二人目",
		"move_in_date": "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Tenants []models.Tenant `json:"tenants"`
		Count   int             `json:"count"`
	}

	w = doJSON(r, http.MethodGet, "/api/tenants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	w = doJSON(r, http.MethodGet, "/api/tenants?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "二人目", resp.Tenants[0].Name)
}
