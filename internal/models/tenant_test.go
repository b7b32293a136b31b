package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTenantIsActive(t *testing.T) {
	tenant := Tenant{}
	assert.True(t, tenant.IsActive())

	out := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	tenant.MoveOutDate = &out
	assert.False(t, tenant.IsActive())
}

func TestTenantIsContractExpiring(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Inside the 3 month window
	tenant := Tenant{ContractEndDate: now.AddDate(0, 2, 0)}
	assert.True(t, tenant.IsContractExpiring(now))

	// Ends today
	tenant.ContractEndDate = now
	assert.True(t, tenant.IsContractExpiring(now))

	// Already expired
	tenant.ContractEndDate = now.AddDate(0, 0, -1)
	assert.False(t, tenant.IsContractExpiring(now))

	// Too far out
	tenant.ContractEndDate = now.AddDate(0, 4, 0)
	assert.False(t, tenant.IsContractExpiring(now))
}

func TestRoomStatusValid(t *testing.T) {
	assert.True(t, RoomStatusVacant.Valid())
	assert.True(t, RoomStatusOccupied.Valid())
	assert.True(t, RoomStatusReserved.Valid())
	assert.False(t, RoomStatus("demolished").Valid())
	assert.False(t, RoomStatus("").Valid())
}

func TestInquiryStatusIsPending(t *testing.T) {
	assert.True(t, InquiryStatusNew.IsPending())
	assert.True(t, InquiryStatusInProgress.IsPending())
	assert.False(t, InquiryStatusResolved.IsPending())
	assert.False(t, InquiryStatusClosed.IsPending())
}

func TestPropertyVacantRooms(t *testing.T) {
	p := Property{Rooms: []Room{
		{RoomNumber: "101", Status: RoomStatusVacant},
		{RoomNumber: "102", Status: RoomStatusOccupied},
		{RoomNumber: "103", Status: RoomStatusVacant},
	}}

	vacant := p.VacantRooms()
	assert.Len(t, vacant, 2)
	assert.Equal(t, "101", vacant[0].RoomNumber)
}
