package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry は問い合わせ。入居者からのものと、公開サイト経由の
// 内見希望者からのものの両方を扱う。
type Inquiry struct {
	ID         string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID *string `gorm:"type:varchar(36);index" json:"property_id,omitempty"`
	RoomID     *string `gorm:"type:varchar(36);index" json:"room_id,omitempty"`
	TenantID   *string `gorm:"type:varchar(36);index" json:"tenant_id,omitempty"`

	InquirerType InquirerType `gorm:"type:varchar(10);not null;index" json:"inquirer_type"`
	Name         string       `gorm:"type:varchar(100);not null" json:"name"`
	Email        string       `gorm:"type:varchar(255);not null" json:"email"`
	Phone        string       `gorm:"type:varchar(20)" json:"phone,omitempty"`

	Subject string        `gorm:"type:varchar(200);not null" json:"subject"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  InquiryStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`

	Response    string     `gorm:"type:text" json:"response,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_inquiries_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// InquirerType は問い合わせ元の種別
type InquirerType string

const (
	InquirerTypeTenant  InquirerType = "tenant"
	InquirerTypeVisitor InquirerType = "visitor"
)

// InquiryStatus は対応状況
type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
	InquiryStatusClosed     InquiryStatus = "closed"
)

// Valid は既知のステータスかどうか
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

// IsPending は未対応（ダッシュボードの件数に含める）かどうか
func (s InquiryStatus) IsPending() bool {
	return s == InquiryStatusNew || s == InquiryStatusInProgress
}

// TableName はテーブル名を明示的に指定
func (Inquiry) TableName() string {
	return "inquiries"
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
