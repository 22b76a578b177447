// internal/listings/catalog_test.go
package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }
func i(v int) *int         { return &v }

func listingWithPrice(id int64, price float64) Listing {
	return Listing{
		ID:       id,
		Title:    "Hostel",
		Location: "Colombo 03",
		Price:    f(price),
		Active:   true,
	}
}

func TestDeriveListing(t *testing.T) {
	t.Run("Should default every missing field", func(t *testing.T) {
		d := DeriveListing(&Listing{ID: 1, Title: "Bare", Location: "Wellawatte"})

		assert.Equal(t, 0.0, d.Price)
		assert.Equal(t, "Rs. 0", d.PriceDisplay)
		assert.Equal(t, 1.0, d.DistanceKm)
		assert.Equal(t, "Any", d.Gender)
		assert.Equal(t, 0.0, d.Rating)
		assert.Equal(t, 0, d.Reviews)
		assert.NotNil(t, d.Amenities)
		assert.Empty(t, d.Amenities)
		assert.NotNil(t, d.Photos)
		assert.Empty(t, d.Photos)
		assert.Equal(t, UniversityPosition("University of Colombo"), d.Position)
	})

	t.Run("Should format price with thousands separators", func(t *testing.T) {
		d := DeriveListing(&Listing{ID: 1, Price: f(12500)})
		assert.Equal(t, "Rs. 12,500", d.PriceDisplay)

		d = DeriveListing(&Listing{ID: 2, Price: f(1250000)})
		assert.Equal(t, "Rs. 1,250,000", d.PriceDisplay)

		d = DeriveListing(&Listing{ID: 3, Price: f(950)})
		assert.Equal(t, "Rs. 950", d.PriceDisplay)
	})

	t.Run("Should keep explicit coordinates", func(t *testing.T) {
		d := DeriveListing(&Listing{ID: 1, Latitude: f(6.80), Longitude: f(79.95)})
		assert.Equal(t, [2]float64{6.80, 79.95}, d.Position)
	})

	t.Run("Should split amenities into visible chips and an overflow count", func(t *testing.T) {
		d := DeriveListing(&Listing{ID: 1})
		assert.NotNil(t, d.VisibleAmenities)
		assert.Empty(t, d.VisibleAmenities)
		assert.Equal(t, 0, d.OverflowAmenityCount)

		d = DeriveListing(&Listing{ID: 2, Amenities: []string{"WiFi", "AC", "Laundry"}})
		assert.Equal(t, []string{"WiFi", "AC", "Laundry"}, d.VisibleAmenities)
		assert.Equal(t, 0, d.OverflowAmenityCount)

		d = DeriveListing(&Listing{ID: 3, Amenities: []string{
			"WiFi", "AC", "Laundry", "Kitchen", "Parking", "CCTV", "Hot Water", "Study Area", "Gym", "Meals",
		}})
		assert.Equal(t, []string{"WiFi", "AC", "Laundry"}, d.VisibleAmenities)
		assert.Equal(t, 7, d.OverflowAmenityCount)
	})

	t.Run("Should not share amenity slices with the raw listing", func(t *testing.T) {
		raw := Listing{ID: 1, Amenities: []string{"WiFi", "AC"}}
		d := DeriveListing(&raw)

		d.Amenities[0] = "changed"
		assert.Equal(t, "WiFi", raw.Amenities[0])
	})

	t.Run("Should carry ratings and reviews through", func(t *testing.T) {
		d := DeriveListing(&Listing{ID: 1, Rating: f(4.5), Reviews: i(12)})
		assert.Equal(t, 4.5, d.Rating)
		assert.Equal(t, 12, d.Reviews)
	})
}

func TestFilterListings(t *testing.T) {
	criteria := FilterCriteria{
		PriceMin:         5000,
		PriceMax:         50000,
		MaxDistanceKm:    5,
		GenderPreference: "Any",
	}

	t.Run("Should keep prices inside the range inclusive", func(t *testing.T) {
		raw := []Listing{
			listingWithPrice(1, 5000),
			listingWithPrice(2, 12000),
			listingWithPrice(3, 30000),
			listingWithPrice(4, 45000),
			listingWithPrice(5, 60000),
		}

		matched := FilterListings(DeriveListings(raw), criteria)

		require.Len(t, matched, 4)
		assert.Equal(t, int64(1), matched[0].ID)
		assert.Equal(t, int64(4), matched[3].ID)
	})

	t.Run("Should exclude listings beyond the distance limit", func(t *testing.T) {
		raw := []Listing{
			{ID: 1, Price: f(10000), DistanceKm: f(2.0)},
			{ID: 2, Price: f(10000), DistanceKm: f(5.0)},
			{ID: 3, Price: f(10000), DistanceKm: f(7.5)},
		}

		matched := FilterListings(DeriveListings(raw), criteria)

		require.Len(t, matched, 2)
		assert.Equal(t, int64(1), matched[0].ID)
		assert.Equal(t, int64(2), matched[1].ID)
	})

	t.Run("Should treat a missing distance as one kilometre", func(t *testing.T) {
		raw := []Listing{{ID: 1, Price: f(10000)}}

		tight := criteria
		tight.MaxDistanceKm = 1.0
		matched := FilterListings(DeriveListings(raw), tight)
		assert.Len(t, matched, 1)

		tight.MaxDistanceKm = 0.5
		matched = FilterListings(DeriveListings(raw), tight)
		assert.Empty(t, matched)
	})

	t.Run("Should match gender against the preference", func(t *testing.T) {
		raw := []Listing{
			{ID: 1, Price: f(10000), Gender: s("Male")},
			{ID: 2, Price: f(10000), Gender: s("Female")},
			{ID: 3, Price: f(10000), Gender: s("Any")},
			{ID: 4, Price: f(10000)}, // defaults to Any
		}
		derived := DeriveListings(raw)

		male := criteria
		male.GenderPreference = "Male"
		matched := FilterListings(derived, male)
		require.Len(t, matched, 3)
		assert.Equal(t, int64(1), matched[0].ID)
		assert.Equal(t, int64(3), matched[1].ID)
		assert.Equal(t, int64(4), matched[2].ID)

		matched = FilterListings(derived, criteria)
		assert.Len(t, matched, 4)
	})

	t.Run("Should preserve input order", func(t *testing.T) {
		raw := []Listing{
			listingWithPrice(30, 20000),
			listingWithPrice(10, 10000),
			listingWithPrice(20, 15000),
		}

		matched := FilterListings(DeriveListings(raw), criteria)

		require.Len(t, matched, 3)
		assert.Equal(t, int64(30), matched[0].ID)
		assert.Equal(t, int64(10), matched[1].ID)
		assert.Equal(t, int64(20), matched[2].ID)
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		raw := []Listing{
			listingWithPrice(1, 10000),
			listingWithPrice(2, 90000),
			listingWithPrice(3, 25000),
		}
		derived := DeriveListings(raw)

		once := FilterListings(derived, criteria)
		twice := FilterListings(once, criteria)

		assert.Equal(t, once, twice)
	})

	t.Run("Should not modify the input slice", func(t *testing.T) {
		raw := []Listing{
			listingWithPrice(1, 10000),
			listingWithPrice(2, 90000),
		}
		derived := DeriveListings(raw)

		FilterListings(derived, criteria)

		require.Len(t, derived, 2)
		assert.Equal(t, int64(1), derived[0].ID)
		assert.Equal(t, int64(2), derived[1].ID)
	})

	t.Run("Should return empty for an empty catalog", func(t *testing.T) {
		matched := FilterListings(nil, criteria)
		assert.Empty(t, matched)
	})
}

func TestToMapMarkers(t *testing.T) {
	t.Run("Should put the university focus marker first", func(t *testing.T) {
		raw := []Listing{
			{ID: 1, Title: "Sunrise Hostel", Location: "Katubedda", Price: f(12500), Latitude: f(6.79), Longitude: f(79.90)},
		}

		markers := ToMapMarkers(DeriveListings(raw), "University of Moratuwa")

		require.Len(t, markers, 2)
		assert.Equal(t, "University of Moratuwa", markers[0].Title)
		assert.Equal(t, "Selected University", markers[0].Description)
		assert.Equal(t, UniversityPosition("University of Moratuwa"), markers[0].Position)

		assert.Equal(t, "Sunrise Hostel", markers[1].Title)
		assert.Equal(t, "Rs. 12,500 - Katubedda", markers[1].Description)
		assert.Equal(t, [2]float64{6.79, 79.90}, markers[1].Position)
	})

	t.Run("Should return only the focus marker for an empty result", func(t *testing.T) {
		markers := ToMapMarkers(nil, "University of Kelaniya")

		require.Len(t, markers, 1)
		assert.Equal(t, "University of Kelaniya", markers[0].Title)
	})

	t.Run("Should fall back to Colombo for an unknown university", func(t *testing.T) {
		markers := ToMapMarkers(nil, "University of Nowhere")

		require.Len(t, markers, 1)
		assert.Equal(t, [2]float64{6.9000, 79.8588}, markers[0].Position)
	})

	t.Run("Should use the default university when none is given", func(t *testing.T) {
		markers := ToMapMarkers(nil, "")

		require.Len(t, markers, 1)
		assert.Equal(t, "University of Colombo", markers[0].Title)
	})
}

func TestUniversityPosition(t *testing.T) {
	t.Run("Should know every supported campus", func(t *testing.T) {
		for _, name := range Universities() {
			pos := UniversityPosition(name)
			assert.NotZero(t, pos[0], name)
			assert.NotZero(t, pos[1], name)
		}
	})

	t.Run("Should fall back to Colombo", func(t *testing.T) {
		assert.Equal(t, [2]float64{6.9000, 79.8588}, UniversityPosition("made up"))
	})
}
