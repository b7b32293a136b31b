package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant は入居者。退去後もレコードは残し、MoveOutDate の有無で
// 現入居者かどうかを判定する。
type Tenant struct {
	ID       string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	RoomID   *string `gorm:"type:varchar(36);index" json:"room_id,omitempty"`
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	NameKana string  `gorm:"type:varchar(100)" json:"name_kana,omitempty"`
	Email    string  `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone    string  `gorm:"type:varchar(20)" json:"phone,omitempty"`

	EmergencyContact string `gorm:"type:varchar(100)" json:"emergency_contact,omitempty"`
	EmergencyPhone   string `gorm:"type:varchar(20)" json:"emergency_phone,omitempty"`

	MoveInDate        time.Time  `gorm:"type:date;not null" json:"move_in_date"`
	MoveOutDate       *time.Time `gorm:"type:date;index" json:"move_out_date,omitempty"`
	ContractStartDate time.Time  `gorm:"type:date;not null" json:"contract_start_date"`
	ContractEndDate   time.Time  `gorm:"type:date;not null" json:"contract_end_date"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_tenants_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// TableName はテーブル名を明示的に指定
func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsActive は現入居者かどうか（退去日未設定）
func (t *Tenant) IsActive() bool {
	return t.MoveOutDate == nil
}

// IsContractExpiring は契約終了日が3ヶ月以内かどうか
func (t *Tenant) IsContractExpiring(now time.Time) bool {
	end := t.ContractEndDate
	return !end.Before(now) && !end.After(now.AddDate(0, 3, 0))
}
