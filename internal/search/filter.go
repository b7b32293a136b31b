package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
)

type FilterParams struct {
	Query      string
	PropertyID string
	MinRent    *int
	MaxRent    *int
	RoomTypes  []string
	MaxFloor   *int
	MinArea    *float64
	SortBy     string
	Limit      int64
}

// BuildFilter converts the params into a Meilisearch filter string.
func (p FilterParams) BuildFilter() string {
	var filters []string

	if p.PropertyID != "" {
		filters = append(filters, fmt.Sprintf("property_id = '%s'", p.PropertyID))
	}

	// Rent range filter
	if p.MinRent != nil {
		filters = append(filters, fmt.Sprintf("rent >= %d", *p.MinRent))
	}
	if p.MaxRent != nil {
		filters = append(filters, fmt.Sprintf("rent <= %d", *p.MaxRent))
	}

	// Room type filter
	if len(p.RoomTypes) > 0 {
		typeFilters := make([]string, len(p.RoomTypes))
		for i, rt := range p.RoomTypes {
			typeFilters[i] = fmt.Sprintf("room_type = '%s'", rt)
		}
		filters = append(filters, fmt.Sprintf("(%s)", strings.Join(typeFilters, " OR ")))
	}

	if p.MaxFloor != nil {
		filters = append(filters, fmt.Sprintf("floor <= %d", *p.MaxFloor))
	}
	if p.MinArea != nil {
		filters = append(filters, fmt.Sprintf("area >= %g", *p.MinArea))
	}

	return strings.Join(filters, " AND ")
}

// FilterSearch performs filtered search over the vacancy index
func (s *SearchClient) FilterSearch(params FilterParams) ([]Listing, error) {
	// Default limit
	if params.Limit == 0 {
		params.Limit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit: params.Limit,
	}

	if filterStr := params.BuildFilter(); filterStr != "" {
		searchReq.Filter = filterStr
	}

	switch params.SortBy {
	case "rent_asc":
		searchReq.Sort = []string{"rent:asc"}
	case "rent_desc":
		searchReq.Sort = []string{"rent:desc"}
	case "area_desc":
		searchReq.Sort = []string{"area:desc"}
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	// Convert hits to listings
	var listings []Listing
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var listing Listing
		if err := json.Unmarshal(hitJSON, &listing); err != nil {
			continue
		}

		listings = append(listings, listing)
	}

	return listings, nil
}
