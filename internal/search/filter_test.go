package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"property-portal/internal/models"
)

func TestBuildFilter(t *testing.T) {
	assert.Equal(t, "", FilterParams{}.BuildFilter())

	minRent := 50000
	maxRent := 90000
	assert.Equal(t, "rent >= 50000 AND rent <= 90000",
		FilterParams{MinRent: &minRent, MaxRent: &maxRent}.BuildFilter())

	assert.Equal(t, "property_id = 'p1'",
		FilterParams{PropertyID: "p1"}.BuildFilter())

	assert.Equal(t, "(room_type = '1K' OR room_type = '1DK')",
		FilterParams{RoomTypes: []string{"1K", "1DK"}}.BuildFilter())

	maxFloor := 3
	minArea := 20.5
	assert.Equal(t, "floor <= 3 AND area >= 20.5",
		FilterParams{MaxFloor: &maxFloor, MinArea: &minArea}.BuildFilter())
}

func TestNewListing(t *testing.T) {
	floor := 2
	area := 25.3
	room := &models.Room{
		ID:         "r1",
		PropertyID: "p1",
		RoomNumber: "201",
		Floor:      &floor,
		Rent:       72000,
		RoomType:   "1K",
		Area:       &area,
	}
	property := &models.Property{ID: "p1", Name: "コーポ桜", Address: "世田谷区"}

	l := NewListing(room, property)
	assert.Equal(t, "r1", l.ID)
	assert.Equal(t, "コーポ桜", l.PropertyName)
	assert.Equal(t, "世田谷区", l.Address)
	assert.Equal(t, 72000, l.Rent)
	assert.Equal(t, &floor, l.Floor)

	// Property may be missing when the association is not loaded
	l = NewListing(room, nil)
	assert.Empty(t, l.PropertyName)
	assert.Equal(t, "r1", l.ID)
}
