package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoveHistory は入退去履歴（追記専用の監査ログ）
type MoveHistory struct {
	ID       string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	RoomID   string   `gorm:"type:varchar(36);not null;index" json:"room_id"`
	TenantID string   `gorm:"type:varchar(36);not null;index" json:"tenant_id"`
	MoveType MoveType `gorm:"type:varchar(10);not null" json:"move_type"`

	MoveDate time.Time `gorm:"type:date;not null;index:idx_move_histories_move_date,sort:desc" json:"move_date"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`

	Room   *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// MoveType は入退去の種別
type MoveType string

const (
	MoveTypeIn  MoveType = "in"
	MoveTypeOut MoveType = "out"
)

// TableName はテーブル名を明示的に指定
func (MoveHistory) TableName() string {
	return "move_histories"
}

func (m *MoveHistory) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
