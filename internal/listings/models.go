// internal/listings/models.go
package listings

import (
	"time"

	"github.com/lib/pq"
)

// Listing is the raw hostel listing row as stored. Several fields are
// nullable because landlord submissions from older app versions omitted
// them; the catalog layer fills in defaults so the rest of the system
// never sees a partial listing.
type Listing struct {
	ID          int64          `json:"id" db:"id"`
	LandlordID  int64          `json:"landlordId" db:"landlord_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Price       *float64       `json:"price,omitempty" db:"price"`
	Location    string         `json:"location" db:"location"`
	Latitude    *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64       `json:"longitude,omitempty" db:"longitude"`
	DistanceKm  *float64       `json:"distanceKm,omitempty" db:"distance_km"`
	Gender      *string        `json:"gender,omitempty" db:"gender"`
	Amenities   pq.StringArray `json:"amenities" db:"amenities"`
	Photos      pq.StringArray `json:"photos" db:"photos"`
	Rating      *float64       `json:"rating,omitempty" db:"rating"`
	Reviews     *int           `json:"reviews,omitempty" db:"reviews"`
	Active      bool           `json:"active" db:"active"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// DerivedListing is the display-ready projection of a listing. Every
// field is concrete: missing raw values have been defaulted and the
// price display string is precomputed for the card UI.
type DerivedListing struct {
	ID                   int64      `json:"id"`
	LandlordID           int64      `json:"landlordId"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Price                float64    `json:"price"`
	PriceDisplay         string     `json:"priceDisplay"`
	Location             string     `json:"location"`
	Position             [2]float64 `json:"position"`
	DistanceKm           float64    `json:"distanceKm"`
	Gender               string     `json:"gender"`
	Amenities            []string   `json:"amenities"`
	VisibleAmenities     []string   `json:"visibleAmenities"`
	OverflowAmenityCount int        `json:"overflowAmenityCount"`
	Photos               []string   `json:"photos"`
	Rating               float64    `json:"rating"`
	Reviews              int        `json:"reviews"`
	Active               bool       `json:"active"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// FilterCriteria holds the search filters from the find-hostels screen.
type FilterCriteria struct {
	PriceMin         float64 `json:"priceMin"`
	PriceMax         float64 `json:"priceMax"`
	MaxDistanceKm    float64 `json:"maxDistanceKm"`
	GenderPreference string  `json:"genderPreference"`
}

// Marker is a point rendered on the map surface.
type Marker struct {
	Position    [2]float64 `json:"position"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// CreateListingRequest is the landlord's new-listing submission.
type CreateListingRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=150"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       float64  `json:"price" validate:"required,gte=0"`
	Location    string   `json:"location" validate:"required,max=200"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty" validate:"omitempty,gte=0"`
	Gender      string   `json:"gender" validate:"omitempty,oneof=Male Female Any"`
	Amenities   []string `json:"amenities"`
}

// UpdateListingRequest is a partial update; nil fields are untouched.
type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty" validate:"omitempty,gte=0"`
	Gender      *string  `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Any"`
	Amenities   []string `json:"amenities,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// SearchResponse is the payload for the hostel search endpoint: the
// filtered cards plus the markers the map renders alongside them.
type SearchResponse struct {
	Listings []DerivedListing `json:"listings"`
	Markers  []Marker         `json:"markers"`
	Count    int              `json:"count"`
	Criteria FilterCriteria   `json:"criteria"`
}
