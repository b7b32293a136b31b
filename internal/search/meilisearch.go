package search

import (
	"property-portal/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

// Listing is the search document for one vacant room on the public
// site. Only vacant rooms are indexed; a room leaving the vacant
// state has its document removed.
type Listing struct {
	ID            string   `json:"id"`
	PropertyID    string   `json:"property_id"`
	PropertyName  string   `json:"property_name"`
	Address       string   `json:"address"`
	RoomNumber    string   `json:"room_number"`
	Floor         *int     `json:"floor,omitempty"`
	Rent          int      `json:"rent"`
	ManagementFee int      `json:"management_fee"`
	Deposit       int      `json:"deposit"`
	KeyMoney      int      `json:"key_money"`
	RoomType      string   `json:"room_type,omitempty"`
	Area          *float64 `json:"area,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// NewListing builds a search document from a room and its property.
func NewListing(room *models.Room, property *models.Property) Listing {
	l := Listing{
		ID:            room.ID,
		PropertyID:    room.PropertyID,
		RoomNumber:    room.RoomNumber,
		Floor:         room.Floor,
		Rent:          room.Rent,
		ManagementFee: room.ManagementFee,
		Deposit:       room.Deposit,
		KeyMoney:      room.KeyMoney,
		RoomType:      room.RoomType,
		Area:          room.Area,
		Description:   room.Description,
	}
	if property != nil {
		l.PropertyName = property.Name
		l.Address = property.Address
	}
	return l
}

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "vacant_rooms",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"property_name",
		"address",
		"room_number",
		"room_type",
		"description",
	})
	if err != nil {
		return err
	}

	// Configure filterable attributes
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"property_id",
		"rent",
		"room_type",
		"floor",
		"area",
	})
	if err != nil {
		return err
	}

	// Configure sortable attributes
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"rent",
		"area",
		"floor",
	})
	if err != nil {
		return err
	}

	return nil
}

// IndexListing indexes a single vacant room
func (s *SearchClient) IndexListing(listing Listing) error {
	_, err := s.client.Index(s.index).AddDocuments([]Listing{listing})
	return err
}

// IndexListings indexes multiple vacant rooms
func (s *SearchClient) IndexListings(listings []Listing) error {
	if len(listings) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(listings)
	return err
}

// RemoveListing removes a room from the index (no longer vacant or deleted)
func (s *SearchClient) RemoveListing(roomID string) error {
	_, err := s.client.Index(s.index).DeleteDocument(roomID)
	return err
}

// ClearIndex removes every document (used before a full reindex)
func (s *SearchClient) ClearIndex() error {
	_, err := s.client.Index(s.index).DeleteAllDocuments()
	return err
}
