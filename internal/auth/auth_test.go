package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"property-portal/internal/auth"
	"property-portal/internal/database"
	"property-portal/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(db))
	return db
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, auth.CheckPassword(hash, "secret-password"))
	assert.False(t, auth.CheckPassword(hash, "wrong-password"))
}

func TestTokenIssueAndVerify(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	admin := &models.Admin{
		ID:    "admin-1",
		Email: "admin@example.com",
		Role:  models.AdminRoleSuperAdmin,
	}

	token, expiresAt, err := tokens.Issue(admin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.AdminRoleSuperAdmin, claims.Role)
}

func TestTokenVerifyRejectsBadInput(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Signed with a different secret
	other := auth.NewTokenService("other-secret", time.Hour)
	token, _, err := other.Issue(&models.Admin{ID: "a", Email: "a@example.com", Role: models.AdminRoleAdmin})
	require.NoError(t, err)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", -time.Minute)
	token, _, err := tokens.Issue(&models.Admin{ID: "a", Email: "a@example.com", Role: models.AdminRoleAdmin})
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := auth.NewService(db, tokens, zap.NewNop())

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	admin := models.Admin{Email: "admin@example.com", Name: "管理者", PasswordHash: hash, Role: models.AdminRoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	result, err := svc.Login("admin@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, admin.ID, result.Admin.ID)

	_, err = svc.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := auth.NewService(db, tokens, zap.NewNop())

	require.NoError(t, svc.EnsureDefaultAdmin("admin@example.com", "initial-pass"))

	var admin models.Admin
	require.NoError(t, db.First(&admin, "email = ?", "admin@example.com").Error)
	assert.Equal(t, models.AdminRoleSuperAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "initial-pass"))

	// Second call is a no-op once an admin exists
	require.NoError(t, svc.EnsureDefaultAdmin("other@example.com", "x"))
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
