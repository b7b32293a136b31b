package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room は部屋（ベッド単位で管理する物件もある）
type Room struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	RoomNumber string `gorm:"type:varchar(20);not null" json:"room_number"`
	Floor      *int   `gorm:"type:int" json:"floor,omitempty"`

	// 賃料条件
	Rent          int `gorm:"type:int;not null;default:0;index" json:"rent"`
	ManagementFee int `gorm:"type:int;not null;default:0" json:"management_fee"`
	Deposit       int `gorm:"type:int;not null;default:0" json:"deposit"`
	KeyMoney      int `gorm:"type:int;not null;default:0" json:"key_money"`

	RoomType    string     `gorm:"type:varchar(50)" json:"room_type,omitempty"`
	Area        *float64   `gorm:"type:decimal(10,2)" json:"area,omitempty"`
	Status      RoomStatus `gorm:"type:varchar(20);not null;default:'vacant';index" json:"status"`
	Description string     `gorm:"type:text" json:"description,omitempty"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// RoomStatus は部屋のステータス
type RoomStatus string

const (
	RoomStatusVacant   RoomStatus = "vacant"
	RoomStatusOccupied RoomStatus = "occupied"
	RoomStatusReserved RoomStatus = "reserved"
)

// Valid は既知のステータスかどうか
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusVacant, RoomStatusOccupied, RoomStatusReserved:
		return true
	}
	return false
}

// TableName はテーブル名を明示的に指定
func (Room) TableName() string {
	return "rooms"
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IsVacant は入居受付可能かどうか
func (r *Room) IsVacant() bool {
	return r.Status == RoomStatusVacant
}
