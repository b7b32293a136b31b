// Package occupancy owns every state transition that ties rooms,
// tenants and move histories together. All multi-step writes run in a
// single transaction so a failed step never leaves a room marked
// occupied without an active tenant (or the reverse).
package occupancy

import (
	"errors"
	"fmt"
	"time"

	"property-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotVacant   = errors.New("room is not vacant")
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrTenantNotActive = errors.New("tenant has already moved out")
	ErrNameRequired    = errors.New("tenant name is required")
	ErrDateRequired    = errors.New("move date is required")
)

// DefaultContractEnd is used when no contract end date is supplied.
var DefaultContractEnd = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

// Service executes move-in / move-out transitions.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// MoveInInput carries the tenant and contract fields for a move-in.
// RoomID may be empty: the tenant is then registered without a room
// and no occupancy transition happens.
type MoveInInput struct {
	RoomID            string
	Name              string
	NameKana          string
	Email             string
	Phone             string
	EmergencyContact  string
	EmergencyPhone    string
	MoveInDate        time.Time
	ContractStartDate *time.Time
	ContractEndDate   *time.Time
	Notes             string
}

// MoveIn registers a tenant and, when a room is given, marks it
// occupied and appends the move history entry. The room must be
// vacant; the status flip is a guarded UPDATE (vacant -> occupied) so
// of two concurrent move-ins on the same room only one commits and
// the other fails with ErrRoomNotVacant.
func (s *Service) MoveIn(in MoveInInput) (*models.Tenant, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.MoveInDate.IsZero() {
		return nil, ErrDateRequired
	}

	contractStart := in.MoveInDate
	if in.ContractStartDate != nil {
		contractStart = *in.ContractStartDate
	}
	contractEnd := DefaultContractEnd
	if in.ContractEndDate != nil {
		contractEnd = *in.ContractEndDate
	}

	tenant := &models.Tenant{
		Name:              in.Name,
		NameKana:          in.NameKana,
		Email:             in.Email,
		Phone:             in.Phone,
		EmergencyContact:  in.EmergencyContact,
		EmergencyPhone:    in.EmergencyPhone,
		MoveInDate:        in.MoveInDate,
		ContractStartDate: contractStart,
		ContractEndDate:   contractEnd,
		Notes:             in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.RoomID != "" {
			var room models.Room
			if err := tx.Where("id = ?", in.RoomID).First(&room).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}
			if !room.IsVacant() {
				return ErrRoomNotVacant
			}
			tenant.RoomID = &room.ID
		}

		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}

		if in.RoomID == "" {
			return nil
		}

		// 空室の場合のみ更新する。同時入居は片方だけ成功する
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", in.RoomID, models.RoomStatusVacant).
			Update("status", models.RoomStatusOccupied)
		if res.Error != nil {
			return fmt.Errorf("update room status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotVacant
		}

		history := &models.MoveHistory{
			RoomID:   in.RoomID,
			TenantID: tenant.ID,
			MoveType: models.MoveTypeIn,
			MoveDate: in.MoveInDate,
			Notes:    in.Notes,
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("create move history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tenant moved in",
		zap.String("tenant_id", tenant.ID),
		zap.String("room_id", in.RoomID))
	return tenant, nil
}

// MoveOut records a tenant's move-out date, returns the room to
// vacant and appends the move history entry. The tenant keeps its
// room reference so historical reporting stays navigable; active
// tenant queries filter on move_out_date IS NULL.
func (s *Service) MoveOut(tenantID string, moveOutDate time.Time, notes string) (*models.Tenant, error) {
	if moveOutDate.IsZero() {
		return nil, ErrDateRequired
	}

	var tenant models.Tenant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}
		if !tenant.IsActive() {
			return ErrTenantNotActive
		}

		if err := tx.Model(&tenant).Update("move_out_date", moveOutDate).Error; err != nil {
			return fmt.Errorf("update tenant: %w", err)
		}
		tenant.MoveOutDate = &moveOutDate

		if tenant.RoomID == nil {
			return nil
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ?", *tenant.RoomID).
			Update("status", models.RoomStatusVacant).Error; err != nil {
			return fmt.Errorf("update room status: %w", err)
		}

		history := &models.MoveHistory{
			RoomID:   *tenant.RoomID,
			TenantID: tenant.ID,
			MoveType: models.MoveTypeOut,
			MoveDate: moveOutDate,
			Notes:    notes,
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("create move history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tenant moved out",
		zap.String("tenant_id", tenant.ID),
		zap.Time("move_out_date", moveOutDate))
	return &tenant, nil
}

// DeleteTenant removes a tenant and its move histories. When the
// tenant was still active and attached to a room, the room is
// restored to vacant in the same transaction so no room stays marked
// occupied without a tenant.
func (s *Service) DeleteTenant(tenantID string) (roomID string, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}

		if tenant.IsActive() && tenant.RoomID != nil {
			roomID = *tenant.RoomID
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *tenant.RoomID).
				Update("status", models.RoomStatusVacant).Error; err != nil {
				return fmt.Errorf("update room status: %w", err)
			}
		}

		if err := tx.Where("tenant_id = ?", tenantID).Delete(&models.MoveHistory{}).Error; err != nil {
			return fmt.Errorf("delete move histories: %w", err)
		}
		if err := tx.Delete(&tenant).Error; err != nil {
			return fmt.Errorf("delete tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("tenant deleted", zap.String("tenant_id", tenantID))
	return roomID, nil
}

// ActiveTenantForRoom returns the active tenant occupying the room,
// or nil when the room has none.
func (s *Service) ActiveTenantForRoom(roomID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("room_id = ? AND move_out_date IS NULL", roomID).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
