package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Maintenance は修繕・メンテナンス案件
type Maintenance struct {
	ID         string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string  `gorm:"type:varchar(36);not null;index" json:"property_id"`
	RoomID     *string `gorm:"type:varchar(36);index" json:"room_id,omitempty"`

	Title       string              `gorm:"type:varchar(200);not null" json:"title"`
	Description string              `gorm:"type:text" json:"description,omitempty"`
	Status      MaintenanceStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority    MaintenancePriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Cost        *int                `gorm:"type:int" json:"cost,omitempty"`

	ReportedDate  time.Time  `gorm:"type:date;not null;index:idx_maintenances_reported_date,sort:desc" json:"reported_date"`
	ScheduledDate *time.Time `gorm:"type:date" json:"scheduled_date,omitempty"`
	CompletedDate *time.Time `gorm:"type:date" json:"completed_date,omitempty"`

	Contractor string `gorm:"type:varchar(100)" json:"contractor,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// MaintenanceStatus は対応状況
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

// Valid は既知のステータスかどうか
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress,
		MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}

// MaintenancePriority は優先度
type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "low"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityHigh   MaintenancePriority = "high"
	MaintenancePriorityUrgent MaintenancePriority = "urgent"
)

// Valid は既知の優先度かどうか
func (p MaintenancePriority) Valid() bool {
	switch p {
	case MaintenancePriorityLow, MaintenancePriorityMedium,
		MaintenancePriorityHigh, MaintenancePriorityUrgent:
		return true
	}
	return false
}

// TableName はテーブル名を明示的に指定
func (Maintenance) TableName() string {
	return "maintenances"
}

func (m *Maintenance) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
