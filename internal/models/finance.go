package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finance は収支（月次で集計する入出金レコード）
type Finance struct {
	ID         string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string  `gorm:"type:varchar(36);not null;index" json:"property_id"`
	RoomID     *string `gorm:"type:varchar(36);index" json:"room_id,omitempty"`

	Type        FinanceType `gorm:"type:varchar(10);not null;index" json:"type"`
	Category    string      `gorm:"type:varchar(50);not null" json:"category"`
	Amount      int         `gorm:"type:int;not null" json:"amount"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Date        time.Time   `gorm:"type:date;not null;index:idx_finances_date,sort:desc" json:"date"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// FinanceType は収入・支出の種別
type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "income"
	FinanceTypeExpense FinanceType = "expense"
)

// Valid は既知の種別かどうか
func (t FinanceType) Valid() bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

// 収支カテゴリの既定値
var (
	IncomeCategories  = []string{"家賃", "管理費", "敷金", "礼金", "その他収入"}
	ExpenseCategories = []string{"修繕費", "管理費", "光熱費", "保険料", "税金", "清掃費", "その他支出"}
)

// TableName はテーブル名を明示的に指定
func (Finance) TableName() string {
	return "finances"
}

func (f *Finance) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
