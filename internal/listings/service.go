// internal/listings/service.go
package listings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/go-redis/redis/v8"
)

// Common errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNotOwner        = errors.New("listing belongs to another landlord")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrTooManyPhotos   = errors.New("photo limit reached for this listing")
)

// EventPublisher broadcasts catalog events to connected clients. The
// realtime hub implements it; a nil publisher disables broadcasting.
type EventPublisher interface {
	Publish(event string, data interface{})
}

// Service interface
type Service interface {
	Search(ctx context.Context, criteria FilterCriteria, universityName string) (*SearchResponse, error)
	GetAll(ctx context.Context) ([]DerivedListing, error)
	GetByID(ctx context.Context, id int64) (*DerivedListing, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]DerivedListing, error)

	Create(ctx context.Context, landlordID int64, req *CreateListingRequest) (*DerivedListing, error)
	Update(ctx context.Context, id, landlordID int64, req *UpdateListingRequest) (*DerivedListing, error)
	UploadPhotos(ctx context.Context, id, landlordID int64, files []*multipart.FileHeader) (*DerivedListing, error)
	RemovePhoto(ctx context.Context, id, landlordID int64, index int) (*DerivedListing, error)

	CountActiveByLandlord(ctx context.Context, landlordID int64) (int, error)
	DefaultCriteria() FilterCriteria
}

// Config holds service configuration
type Config struct {
	DefaultPriceMin      float64
	DefaultPriceMax      float64
	DefaultMaxDistanceKm float64
	CacheTTL             time.Duration
	MaxPhotos            int
}

type service struct {
	repo      Repository
	cache     *catalogCache
	uploads   *UploadService
	publisher EventPublisher
	config    *Config
}

// NewService creates a new listings service
func NewService(repo Repository, redisClient *redis.Client, uploads *UploadService, publisher EventPublisher, config *Config) Service {
	if config.DefaultPriceMin <= 0 {
		config.DefaultPriceMin = 5000
	}
	if config.DefaultPriceMax <= 0 {
		config.DefaultPriceMax = 50000
	}
	if config.DefaultMaxDistanceKm <= 0 {
		config.DefaultMaxDistanceKm = 5
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = time.Minute
	}
	if config.MaxPhotos <= 0 {
		config.MaxPhotos = 10
	}

	return &service{
		repo:      repo,
		cache:     newCatalogCache(redisClient, config.CacheTTL),
		uploads:   uploads,
		publisher: publisher,
		config:    config,
	}
}

// DefaultCriteria returns the search presets shown when the filter
// sheet first opens.
func (s *service) DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		PriceMin:         s.config.DefaultPriceMin,
		PriceMax:         s.config.DefaultPriceMax,
		MaxDistanceKm:    s.config.DefaultMaxDistanceKm,
		GenderPreference: "Any",
	}
}

// Search runs the student hostel search: load the active catalog,
// derive display listings, filter them, and project the map markers.
// A catalog load failure degrades to an empty result rather than a 500
// so the search screen still renders.
func (s *service) Search(ctx context.Context, criteria FilterCriteria, universityName string) (*SearchResponse, error) {
	searchesTotal.Inc()

	raw := s.loadCatalog(ctx)
	derived := DeriveListings(raw)
	matched := FilterListings(derived, criteria)
	searchResults.Observe(float64(len(matched)))

	return &SearchResponse{
		Listings: matched,
		Markers:  ToMapMarkers(matched, universityName),
		Count:    len(matched),
		Criteria: criteria,
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]DerivedListing, error) {
	return DeriveListings(s.loadCatalog(ctx)), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*DerivedListing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := DeriveListing(l)
	return &d, nil
}

func (s *service) GetByLandlord(ctx context.Context, landlordID int64) ([]DerivedListing, error) {
	raw, err := s.repo.GetByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	return DeriveListings(raw), nil
}

func (s *service) Create(ctx context.Context, landlordID int64, req *CreateListingRequest) (*DerivedListing, error) {
	now := time.Now()

	gender := req.Gender
	if gender == "" {
		gender = defaultGender
	}
	rating := 0.0
	reviews := 0

	l := &Listing{
		LandlordID:  landlordID,
		Title:       req.Title,
		Description: req.Description,
		Price:       &req.Price,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		DistanceKm:  req.DistanceKm,
		Gender:      &gender,
		Amenities:   req.Amenities,
		Photos:      []string{},
		Rating:      &rating,
		Reviews:     &reviews,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	listingsCreated.Inc()
	s.cache.invalidate(ctx)

	d := DeriveListing(l)
	if s.publisher != nil {
		s.publisher.Publish("listing.created", d)
	}

	return &d, nil
}

func (s *service) Update(ctx context.Context, id, landlordID int64, req *UpdateListingRequest) (*DerivedListing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.LandlordID != landlordID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Price != nil {
		l.Price = req.Price
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.Latitude != nil {
		l.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = req.Longitude
	}
	if req.DistanceKm != nil {
		l.DistanceKm = req.DistanceKm
	}
	if req.Gender != nil {
		l.Gender = req.Gender
	}
	if req.Amenities != nil {
		l.Amenities = req.Amenities
	}
	if req.Active != nil {
		l.Active = *req.Active
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx)

	d := DeriveListing(l)
	return &d, nil
}

// UploadPhotos stores the submitted photos and appends their URLs to the
// listing. Individual upload failures are logged and skipped so one bad
// file does not lose the whole batch.
func (s *service) UploadPhotos(ctx context.Context, id, landlordID int64, files []*multipart.FileHeader) (*DerivedListing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	if len(l.Photos)+len(files) > s.config.MaxPhotos {
		return nil, ErrTooManyPhotos
	}

	photos := append([]string{}, l.Photos...)
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			photoUploadFailures.Inc()
			log.Printf("⚠️ Skipping unreadable photo %s: %v", header.Filename, err)
			continue
		}

		url, err := s.uploads.UploadPhoto(file, header, id, len(photos)+i)
		file.Close()
		if err != nil {
			photoUploadFailures.Inc()
			log.Printf("⚠️ Photo upload failed for listing %d: %v", id, err)
			continue
		}

		photos = append(photos, url)
	}

	if err := s.repo.SetPhotos(ctx, id, photos); err != nil {
		return nil, fmt.Errorf("failed to save photo URLs: %w", err)
	}

	l.Photos = photos
	s.cache.invalidate(ctx)

	d := DeriveListing(l)
	return &d, nil
}

// RemovePhoto drops one photo from the listing by position. The stored
// file is deleted best-effort: the listing no longer references it even
// if the storage delete fails.
func (s *service) RemovePhoto(ctx context.Context, id, landlordID int64, index int) (*DerivedListing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	if index < 0 || index >= len(l.Photos) {
		return nil, ErrPhotoNotFound
	}

	removed := l.Photos[index]
	photos := append([]string{}, l.Photos[:index]...)
	photos = append(photos, l.Photos[index+1:]...)

	if err := s.repo.SetPhotos(ctx, id, photos); err != nil {
		return nil, fmt.Errorf("failed to save photo URLs: %w", err)
	}

	if s.uploads != nil {
		if err := s.uploads.DeleteFile(removed); err != nil {
			log.Printf("⚠️ Failed to delete photo file for listing %d: %v", id, err)
		}
	}

	l.Photos = photos
	s.cache.invalidate(ctx)

	d := DeriveListing(l)
	return &d, nil
}

func (s *service) CountActiveByLandlord(ctx context.Context, landlordID int64) (int, error) {
	return s.repo.CountActiveByLandlord(ctx, landlordID)
}

// loadCatalog reads the active catalog through the cache. Failures are
// soft: the search degrades to an empty catalog.
func (s *service) loadCatalog(ctx context.Context) []Listing {
	if items, ok := s.cache.get(ctx); ok {
		catalogCacheHits.WithLabelValues("hit").Inc()
		return items
	}
	catalogCacheHits.WithLabelValues("miss").Inc()

	items, err := s.repo.GetActive(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to load listing catalog: %v", err)
		return []Listing{}
	}

	s.cache.set(ctx, items)
	return items
}
