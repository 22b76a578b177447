// internal/bookings/service_test.go
package bookings

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unistaylk/unistay-backend/internal/listings"
	"github.com/unistaylk/unistay-backend/internal/profile"
)

// fakeRepo is an in-memory booking repository.
type fakeRepo struct {
	nextID int64
	items  map[int64]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: make(map[int64]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	copied := *b
	r.items[b.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByStudent(_ context.Context, studentID int64) ([]Booking, error) {
	var out []Booking
	for _, b := range r.items {
		if b.StudentID == studentID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByLandlord(_ context.Context, landlordID int64) ([]Booking, error) {
	var out []Booking
	for _, b := range r.items {
		if b.LandlordID == landlordID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	b, ok := r.items[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) CountByLandlord(_ context.Context, landlordID int64) (int, int, int, error) {
	total, pending, accepted := 0, 0, 0
	for _, b := range r.items {
		if b.LandlordID != landlordID {
			continue
		}
		total++
		switch b.Status {
		case StatusPending:
			pending++
		case StatusAccepted:
			accepted++
		}
	}
	return total, pending, accepted, nil
}

// fakeCatalog serves one fixed listing.
type fakeCatalog struct {
	listing *listings.DerivedListing
}

func (c *fakeCatalog) GetByID(_ context.Context, id int64) (*listings.DerivedListing, error) {
	if c.listing == nil || c.listing.ID != id {
		return nil, listings.ErrListingNotFound
	}
	return c.listing, nil
}

func (c *fakeCatalog) CountActiveByLandlord(_ context.Context, _ int64) (int, error) {
	if c.listing != nil {
		return 1, nil
	}
	return 0, nil
}

func (c *fakeCatalog) Search(_ context.Context, criteria listings.FilterCriteria, _ string) (*listings.SearchResponse, error) {
	return &listings.SearchResponse{Criteria: criteria}, nil
}
func (c *fakeCatalog) GetAll(_ context.Context) ([]listings.DerivedListing, error) { return nil, nil }
func (c *fakeCatalog) GetByLandlord(_ context.Context, _ int64) ([]listings.DerivedListing, error) {
	return nil, nil
}
func (c *fakeCatalog) Create(_ context.Context, _ int64, _ *listings.CreateListingRequest) (*listings.DerivedListing, error) {
	return nil, nil
}
func (c *fakeCatalog) Update(_ context.Context, _, _ int64, _ *listings.UpdateListingRequest) (*listings.DerivedListing, error) {
	return nil, nil
}
func (c *fakeCatalog) UploadPhotos(_ context.Context, _, _ int64, _ []*multipart.FileHeader) (*listings.DerivedListing, error) {
	return nil, nil
}
func (c *fakeCatalog) RemovePhoto(_ context.Context, _, _ int64, _ int) (*listings.DerivedListing, error) {
	return nil, nil
}
func (c *fakeCatalog) DefaultCriteria() listings.FilterCriteria { return listings.FilterCriteria{} }

// fakeProfiles serves one fixed profile.
type fakeProfiles struct {
	profile *profile.Profile
}

func (p *fakeProfiles) CreateProfile(_ context.Context, _ int64, _, _, _ string) error { return nil }
func (p *fakeProfiles) GetProfile(_ context.Context, userID int64) (*profile.Profile, error) {
	if p.profile == nil || p.profile.UserID != userID {
		return nil, profile.ErrProfileNotFound
	}
	return p.profile, nil
}
func (p *fakeProfiles) UpdateProfile(_ context.Context, _ int64, _ *profile.UpdateProfileRequest) (*profile.Profile, error) {
	return p.profile, nil
}
func (p *fakeProfiles) SetUniversity(_ context.Context, _ int64, _ string) (*profile.Profile, error) {
	return p.profile, nil
}
func (p *fakeProfiles) SetVerificationStatus(_ context.Context, _ int64, _ string) error { return nil }

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	catalog := &fakeCatalog{listing: &listings.DerivedListing{
		ID:         7,
		LandlordID: 100,
		Title:      "Lakeview Hostel",
	}}
	profiles := &fakeProfiles{profile: &profile.Profile{
		UserID: 1,
		Name:   "Nimal Perera",
	}}
	return NewService(repo, catalog, profiles, nil, nil), repo
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a pending booking with snapshots", func(t *testing.T) {
		svc, _ := newTestService()

		b, err := svc.Create(ctx, 1, &CreateBookingRequest{
			ListingID:  7,
			MoveInDate: "2026-10-01",
		})

		require.NoError(t, err)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "Lakeview Hostel", b.ListingTitle)
		assert.Equal(t, int64(100), b.LandlordID)
		assert.Equal(t, "Nimal Perera", b.StudentName)
		assert.Equal(t, DefaultRoomType, b.RoomType)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), b.MoveInDate)
	})

	t.Run("Should keep an explicit room type", func(t *testing.T) {
		svc, _ := newTestService()

		b, err := svc.Create(ctx, 1, &CreateBookingRequest{
			ListingID:  7,
			RoomType:   "Shared Room",
			MoveInDate: "2026-10-01",
		})

		require.NoError(t, err)
		assert.Equal(t, "Shared Room", b.RoomType)
	})

	t.Run("Should reject an unknown listing", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 1, &CreateBookingRequest{
			ListingID:  999,
			MoveInDate: "2026-10-01",
		})

		assert.ErrorIs(t, err, listings.ErrListingNotFound)
	})

	t.Run("Should reject booking your own listing", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 100, &CreateBookingRequest{
			ListingID:  7,
			MoveInDate: "2026-10-01",
		})

		assert.ErrorIs(t, err, ErrOwnListing)
	})

	t.Run("Should reject a malformed move-in date", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, 1, &CreateBookingRequest{
			ListingID:  7,
			MoveInDate: "October 1st",
		})

		assert.ErrorIs(t, err, ErrInvalidMoveInDate)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	createPending := func(t *testing.T, svc Service) *Booking {
		b, err := svc.Create(ctx, 1, &CreateBookingRequest{
			ListingID:  7,
			MoveInDate: "2026-10-01",
		})
		require.NoError(t, err)
		return b
	}

	t.Run("Should accept a pending booking", func(t *testing.T) {
		svc, repo := newTestService()
		b := createPending(t, svc)

		updated, err := svc.UpdateStatus(ctx, b.ID, 100, StatusAccepted)

		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, updated.Status)

		stored, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, stored.Status)
	})

	t.Run("Should decline a pending booking", func(t *testing.T) {
		svc, _ := newTestService()
		b := createPending(t, svc)

		updated, err := svc.UpdateStatus(ctx, b.ID, 100, StatusDeclined)

		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, updated.Status)
	})

	t.Run("Should not decide a booking twice", func(t *testing.T) {
		svc, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, 100, StatusAccepted)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, b.ID, 100, StatusDeclined)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("Should reject another landlord", func(t *testing.T) {
		svc, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, 200, StatusAccepted)
		assert.ErrorIs(t, err, ErrNotYourBooking)
	})

	t.Run("Should reject an invalid status", func(t *testing.T) {
		svc, _ := newTestService()
		b := createPending(t, svc)

		_, err := svc.UpdateStatus(ctx, b.ID, 100, "maybe")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Should return not found for a missing booking", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.UpdateStatus(ctx, 42, 100, StatusAccepted)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestLandlordDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Should aggregate booking counters", func(t *testing.T) {
		svc, _ := newTestService()

		first, err := svc.Create(ctx, 1, &CreateBookingRequest{ListingID: 7, MoveInDate: "2026-10-01"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, 1, &CreateBookingRequest{ListingID: 7, MoveInDate: "2026-11-01"})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, first.ID, 100, StatusAccepted)
		require.NoError(t, err)

		stats, err := svc.LandlordDashboard(ctx, 100)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.ActiveListings)
		assert.Equal(t, 2, stats.TotalBookings)
		assert.Equal(t, 1, stats.PendingRequests)
		assert.Equal(t, 1, stats.AcceptedCount)
	})
}
