package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property は物件（建物単位）
type Property struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Address     string `gorm:"type:text;not null" json:"address"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Rooms []Room `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// TableName はテーブル名を明示的に指定
func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// VacantRooms は読み込み済みの部屋のうち空室のみを返す
func (p *Property) VacantRooms() []Room {
	var vacant []Room
	for _, r := range p.Rooms {
		if r.Status == RoomStatusVacant {
			vacant = append(vacant, r)
		}
	}
	return vacant
}
