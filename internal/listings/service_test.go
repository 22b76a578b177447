// internal/listings/service_test.go
package listings

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	listings  []*Listing
	activeErr error
}

func (r *fakeRepo) Create(_ context.Context, l *Listing) error {
	l.ID = int64(len(r.listings) + 1)
	copied := *l
	r.listings = append(r.listings, &copied)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Listing, error) {
	for _, l := range r.listings {
		if l.ID == id {
			copied := *l
			return &copied, nil
		}
	}
	return nil, ErrListingNotFound
}

func (r *fakeRepo) GetActive(_ context.Context) ([]Listing, error) {
	if r.activeErr != nil {
		return nil, r.activeErr
	}
	var active []Listing
	for _, l := range r.listings {
		if l.Active {
			active = append(active, *l)
		}
	}
	return active, nil
}

func (r *fakeRepo) GetByLandlord(_ context.Context, landlordID int64) ([]Listing, error) {
	var mine []Listing
	for _, l := range r.listings {
		if l.LandlordID == landlordID {
			mine = append(mine, *l)
		}
	}
	return mine, nil
}

func (r *fakeRepo) Update(_ context.Context, l *Listing) error {
	for i, existing := range r.listings {
		if existing.ID == l.ID {
			copied := *l
			r.listings[i] = &copied
			return nil
		}
	}
	return ErrListingNotFound
}

func (r *fakeRepo) SetPhotos(_ context.Context, id int64, photos []string) error {
	for _, l := range r.listings {
		if l.ID == id {
			l.Photos = append([]string{}, photos...)
			return nil
		}
	}
	return ErrListingNotFound
}

func (r *fakeRepo) CountActiveByLandlord(_ context.Context, landlordID int64) (int, error) {
	count := 0
	for _, l := range r.listings {
		if l.LandlordID == landlordID && l.Active {
			count++
		}
	}
	return count, nil
}

func newTestCatalog(repo *fakeRepo, uploads *UploadService) Service {
	return NewService(repo, nil, uploads, nil, &Config{})
}

func TestSearch(t *testing.T) {
	t.Run("Should degrade to an empty result when the catalog cannot load", func(t *testing.T) {
		repo := &fakeRepo{activeErr: errors.New("connection refused")}
		svc := newTestCatalog(repo, nil)

		resp, err := svc.Search(context.Background(), svc.DefaultCriteria(), "University of Moratuwa")

		require.NoError(t, err)
		assert.Empty(t, resp.Listings)
		assert.Equal(t, 0, resp.Count)

		// The map still renders: just the university focus marker
		require.Len(t, resp.Markers, 1)
		assert.Equal(t, "University of Moratuwa", resp.Markers[0].Title)
		assert.Equal(t, "Selected University", resp.Markers[0].Description)
	})

	t.Run("Should filter the active catalog against the criteria", func(t *testing.T) {
		repo := &fakeRepo{listings: []*Listing{
			{ID: 1, Title: "In Budget", Price: f(12000), Active: true},
			{ID: 2, Title: "Too Expensive", Price: f(90000), Active: true},
			{ID: 3, Title: "Deactivated", Price: f(12000), Active: false},
		}}
		svc := newTestCatalog(repo, nil)

		resp, err := svc.Search(context.Background(), svc.DefaultCriteria(), "")

		require.NoError(t, err)
		require.Len(t, resp.Listings, 1)
		assert.Equal(t, "In Budget", resp.Listings[0].Title)
		assert.Len(t, resp.Markers, 2)
	})
}

func TestUploadPhotosLimit(t *testing.T) {
	t.Run("Should refuse a batch that would exceed the photo cap", func(t *testing.T) {
		repo := &fakeRepo{listings: []*Listing{
			{ID: 7, LandlordID: 100, Photos: []string{"a.jpg", "b.jpg", "c.jpg"}, Active: true},
		}}
		svc := NewService(repo, nil, nil, nil, &Config{MaxPhotos: 4})

		files := []*multipart.FileHeader{
			{Filename: "d.jpg"},
			{Filename: "e.jpg"},
		}

		_, err := svc.UploadPhotos(context.Background(), 7, 100, files)
		assert.ErrorIs(t, err, ErrTooManyPhotos)

		stored, _ := repo.GetByID(context.Background(), 7)
		assert.Len(t, stored.Photos, 3)
	})
}

func TestRemovePhoto(t *testing.T) {
	const baseURL = "http://localhost:8080"

	setup := func(t *testing.T) (Service, *fakeRepo, string) {
		tmp := t.TempDir()
		uploads := NewUploadService(UploadConfig{
			LocalUploadDir: tmp,
			BaseURL:        baseURL,
		})

		photoPath := filepath.Join(tmp, "listings", "7", "photo_a.jpg")
		require.NoError(t, os.MkdirAll(filepath.Dir(photoPath), 0755))
		require.NoError(t, os.WriteFile(photoPath, []byte("img"), 0644))

		repo := &fakeRepo{listings: []*Listing{
			{
				ID:         7,
				LandlordID: 100,
				Photos: []string{
					baseURL + "/uploads/listings/7/photo_a.jpg",
					baseURL + "/uploads/listings/7/photo_b.jpg",
				},
				Active: true,
			},
		}}

		return newTestCatalog(repo, uploads), repo, photoPath
	}

	t.Run("Should drop the photo and delete its file", func(t *testing.T) {
		svc, repo, photoPath := setup(t)

		d, err := svc.RemovePhoto(context.Background(), 7, 100, 0)

		require.NoError(t, err)
		require.Len(t, d.Photos, 1)
		assert.Equal(t, baseURL+"/uploads/listings/7/photo_b.jpg", d.Photos[0])

		stored, _ := repo.GetByID(context.Background(), 7)
		assert.Len(t, stored.Photos, 1)

		_, statErr := os.Stat(photoPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Should reject an out-of-range index", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.RemovePhoto(context.Background(), 7, 100, 5)
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})

	t.Run("Should reject another landlord", func(t *testing.T) {
		svc, _, photoPath := setup(t)

		_, err := svc.RemovePhoto(context.Background(), 7, 999, 0)
		assert.ErrorIs(t, err, ErrNotOwner)

		_, statErr := os.Stat(photoPath)
		assert.NoError(t, statErr)
	})
}
