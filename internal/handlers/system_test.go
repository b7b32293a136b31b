package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/config"
	"property-portal/internal/handlers"
	"property-portal/internal/models"
	"property-portal/internal/scheduler"
)

func newSystemRouter(db *gorm.DB, cronSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sched := scheduler.NewScheduler(db, nil, config.DefaultConfig(), zap.NewNop())
	h := handlers.NewSystemHandler(sched, cronSecret, zap.NewNop())

	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/api/cron/keep-alive", h.KeepAlive)
	return r
}

func TestHealth(t *testing.T) {
	db := setupTestDB(t)
	r := newSystemRouter(db, "secret")

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKeepAlive(t *testing.T) {
	db := setupTestDB(t)
	r := newSystemRouter(db, "cron-secret")

	require.NoError(t, db.Create(&models.Property{Name: "A", Address: "a"}).Error)
	require.NoError(t, db.Create(&models.Property{Name: "B", Address: "b"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/cron/keep-alive", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK         bool  `json:"ok"`
		Properties int64 `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, int64(2), resp.Properties)
}

func TestKeepAliveRejectsBadSecret(t *testing.T) {
	db := setupTestDB(t)
	r := newSystemRouter(db, "cron-secret")

	// No header
	w := doJSON(r, http.MethodGet, "/api/cron/keep-alive", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong secret
	req := httptest.NewRequest(http.MethodGet, "/api/cron/keep-alive", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestKeepAliveUnconfigured(t *testing.T) {
	db := setupTestDB(t)
	r := newSystemRouter(db, "")

	w := doJSON(r, http.MethodGet, "/api/cron/keep-alive", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
