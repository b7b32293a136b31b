package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin は管理画面のログインアカウント
type Admin struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	Role         AdminRole `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_admins_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// AdminRole は管理者の権限
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// Valid は既知の権限かどうか
func (r AdminRole) Valid() bool {
	return r == AdminRoleAdmin || r == AdminRoleSuperAdmin
}

// TableName はテーブル名を明示的に指定
func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsSuperAdmin は管理者アカウント管理が可能かどうか
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == AdminRoleSuperAdmin
}
