// internal/bookings/service.go
package bookings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/unistaylk/unistay-backend/internal/listings"
	"github.com/unistaylk/unistay-backend/internal/profile"
)

// Common errors
var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotYourBooking    = errors.New("booking belongs to another landlord")
	ErrAlreadyDecided    = errors.New("booking has already been decided")
	ErrInvalidStatus     = errors.New("status must be accepted or declined")
	ErrInvalidMoveInDate = errors.New("move-in date must be YYYY-MM-DD")
	ErrOwnListing        = errors.New("you cannot book your own listing")
)

// Notifier delivers booking emails. The notifications package provides
// the implementation; a nil notifier silently disables delivery.
type Notifier interface {
	BookingRequested(ctx context.Context, b *Booking)
	BookingDecided(ctx context.Context, b *Booking)
}

// Publisher broadcasts booking events to connected clients.
type Publisher interface {
	Publish(event string, data interface{})
}

// Service interface
type Service interface {
	Create(ctx context.Context, studentID int64, req *CreateBookingRequest) (*Booking, error)
	GetByStudent(ctx context.Context, studentID int64) ([]Booking, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]Booking, error)
	UpdateStatus(ctx context.Context, id, landlordID int64, status string) (*Booking, error)
	LandlordDashboard(ctx context.Context, landlordID int64) (*DashboardStats, error)
}

type service struct {
	repo      Repository
	catalog   listings.Service
	profiles  profile.Service
	notifier  Notifier
	publisher Publisher
}

// NewService creates a new bookings service
func NewService(repo Repository, catalog listings.Service, profiles profile.Service, notifier Notifier, publisher Publisher) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		profiles:  profiles,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Create records a booking request against a listing. The listing title,
// landlord and student name are snapshotted onto the booking row.
func (s *service) Create(ctx context.Context, studentID int64, req *CreateBookingRequest) (*Booking, error) {
	listing, err := s.catalog.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.LandlordID == studentID {
		return nil, ErrOwnListing
	}

	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		return nil, ErrInvalidMoveInDate
	}

	studentName := ""
	if p, err := s.profiles.GetProfile(ctx, studentID); err == nil {
		studentName = p.Name
	}

	roomType := req.RoomType
	if roomType == "" {
		roomType = DefaultRoomType
	}

	now := time.Now()
	b := &Booking{
		StudentID:    studentID,
		StudentName:  studentName,
		LandlordID:   listing.LandlordID,
		ListingID:    listing.ID,
		ListingTitle: listing.Title,
		RoomType:     roomType,
		MoveInDate:   moveIn,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.BookingRequested(ctx, b)
	}
	if s.publisher != nil {
		s.publisher.Publish("booking.created", b)
	}

	return b, nil
}

func (s *service) GetByStudent(ctx context.Context, studentID int64) ([]Booking, error) {
	return s.repo.GetByStudent(ctx, studentID)
}

func (s *service) GetByLandlord(ctx context.Context, landlordID int64) ([]Booking, error) {
	return s.repo.GetByLandlord(ctx, landlordID)
}

// UpdateStatus moves a pending booking to accepted or declined. Only the
// landlord on the booking can decide it, and only once.
func (s *service) UpdateStatus(ctx context.Context, id, landlordID int64, status string) (*Booking, error) {
	if status != StatusAccepted && status != StatusDeclined {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.LandlordID != landlordID {
		return nil, ErrNotYourBooking
	}
	if b.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status
	b.UpdatedAt = time.Now()

	if s.notifier != nil {
		s.notifier.BookingDecided(ctx, b)
	}
	if s.publisher != nil {
		s.publisher.Publish("booking.status", b)
	}

	return b, nil
}

// LandlordDashboard aggregates the landlord home screen counters.
// A failure in the listings count degrades to zero instead of failing
// the whole dashboard.
func (s *service) LandlordDashboard(ctx context.Context, landlordID int64) (*DashboardStats, error) {
	total, pending, accepted, err := s.repo.CountByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	activeListings, err := s.catalog.CountActiveByLandlord(ctx, landlordID)
	if err != nil {
		log.Printf("⚠️ Failed to count active listings for landlord %d: %v", landlordID, err)
		activeListings = 0
	}

	return &DashboardStats{
		ActiveListings:  activeListings,
		PendingRequests: pending,
		TotalBookings:   total,
		AcceptedCount:   accepted,
	}, nil
}
