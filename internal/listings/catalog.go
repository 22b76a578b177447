// internal/listings/catalog.go
// Pure catalog logic: deriving display-ready listings from raw rows,
// filtering them against search criteria, and projecting map markers.
// Nothing in this file touches the database or the network.

package listings

import (
	"math"
	"strconv"
)

const (
	// Defaults applied when a raw listing omits a field
	defaultDistanceKm = 1.0
	defaultGender     = "Any"

	// Number of amenity chips shown on a card before collapsing the
	// rest into a "+N" badge
	visibleAmenities = 3
)

// DeriveListing converts a raw listing into its display-ready form.
// Missing fields get defaults instead of errors: a half-filled listing
// still renders as a card rather than breaking the search screen.
func DeriveListing(l *Listing) DerivedListing {
	d := DerivedListing{
		ID:          l.ID,
		LandlordID:  l.LandlordID,
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Active:      l.Active,
		CreatedAt:   l.CreatedAt,
		Position:    UniversityPosition(DefaultUniversity),
		DistanceKm:  defaultDistanceKm,
		Gender:      defaultGender,
		Amenities:   []string{},
		Photos:      []string{},
	}

	if l.Price != nil && !math.IsNaN(*l.Price) {
		d.Price = *l.Price
	}
	d.PriceDisplay = "Rs. " + formatPrice(d.Price)

	if l.Latitude != nil && l.Longitude != nil {
		d.Position = [2]float64{*l.Latitude, *l.Longitude}
	}
	if l.DistanceKm != nil {
		d.DistanceKm = *l.DistanceKm
	}
	if l.Gender != nil && *l.Gender != "" {
		d.Gender = *l.Gender
	}
	if len(l.Amenities) > 0 {
		d.Amenities = append(d.Amenities, l.Amenities...)
	}
	if len(l.Photos) > 0 {
		d.Photos = append(d.Photos, l.Photos...)
	}
	if l.Rating != nil {
		d.Rating = *l.Rating
	}
	if l.Reviews != nil {
		d.Reviews = *l.Reviews
	}

	visible := len(d.Amenities)
	if visible > visibleAmenities {
		visible = visibleAmenities
		d.OverflowAmenityCount = len(d.Amenities) - visibleAmenities
	}
	d.VisibleAmenities = append([]string{}, d.Amenities[:visible]...)

	return d
}

// DeriveListings derives every listing in order.
func DeriveListings(raw []Listing) []DerivedListing {
	derived := make([]DerivedListing, 0, len(raw))
	for i := range raw {
		derived = append(derived, DeriveListing(&raw[i]))
	}
	return derived
}

// FilterListings returns the listings matching all three predicates:
// price within [PriceMin, PriceMax], distance within MaxDistanceKm, and
// gender compatible with the preference. The input order is preserved
// and the input slice is never modified.
func FilterListings(items []DerivedListing, c FilterCriteria) []DerivedListing {
	matched := make([]DerivedListing, 0, len(items))
	for _, item := range items {
		if item.Price < c.PriceMin || item.Price > c.PriceMax {
			continue
		}
		if item.DistanceKm > c.MaxDistanceKm {
			continue
		}
		if !genderMatches(item.Gender, c.GenderPreference) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// genderMatches reports whether a listing's gender policy admits the
// student's preference. "Any" on either side always matches.
func genderMatches(listingGender, preference string) bool {
	if preference == "" || preference == "Any" {
		return true
	}
	return listingGender == preference || listingGender == "Any"
}

// ToMapMarkers builds the marker set for the map surface: the selected
// university first as the focus marker, then one marker per listing.
func ToMapMarkers(items []DerivedListing, universityName string) []Marker {
	if universityName == "" {
		universityName = DefaultUniversity
	}

	markers := make([]Marker, 0, len(items)+1)
	markers = append(markers, Marker{
		Position:    UniversityPosition(universityName),
		Title:       universityName,
		Description: "Selected University",
	})

	for _, item := range items {
		markers = append(markers, Marker{
			Position:    item.Position,
			Title:       item.Title,
			Description: item.PriceDisplay + " - " + item.Location,
		})
	}

	return markers
}

// formatPrice renders a price with thousands separators, e.g. 12500
// becomes "12,500". Fractional parts are kept only when present.
func formatPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "0"
	}

	negative := p < 0
	if negative {
		p = -p
	}

	whole := int64(p)
	s := strconv.FormatInt(whole, 10)

	// insert commas every three digits from the right
	if len(s) > 3 {
		var out []byte
		for i, digit := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				out = append(out, ',')
			}
			out = append(out, digit)
		}
		s = string(out)
	}

	if frac := p - float64(whole); frac > 0 {
		s += strconv.FormatFloat(frac, 'f', 2, 64)[1:]
	}

	if negative {
		return "-" + s
	}
	return s
}
