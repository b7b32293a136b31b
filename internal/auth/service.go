package auth

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Service は管理者の認証を担当する
type Service struct {
	db     *gorm.DB
	tokens *TokenService
	log    *zap.Logger
}

func NewService(db *gorm.DB, tokens *TokenService, log *zap.Logger) *Service {
	return &Service{db: db, tokens: tokens, log: log}
}

// LoginResult はログイン成功時のレスポンス
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *models.Admin `json:"admin"`
}

// Login はメールアドレスとパスワードで認証してトークンを発行する
func (s *Service) Login(email, password string) (*LoginResult, error) {
	var admin models.Admin
	err := s.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}

	if !CheckPassword(admin.PasswordHash, password) {
		s.log.Warn("login failed", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(&admin)
	if err != nil {
		return nil, err
	}

	s.log.Info("admin logged in", zap.String("admin_id", admin.ID), zap.String("role", string(admin.Role)))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: &admin}, nil
}

// EnsureDefaultAdmin は管理者が1人もいない場合に初期アカウントを作成する
func (s *Service) EnsureDefaultAdmin(email, password string) error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	admin := models.Admin{
		Email:        email,
		Name:         "管理者",
		PasswordHash: hash,
		Role:         models.AdminRoleSuperAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	s.log.Info("default admin created", zap.String("email", email))
	return nil
}
