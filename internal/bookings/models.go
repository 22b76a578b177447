// internal/bookings/models.go
package bookings

import "time"

// Booking statuses. A booking starts pending and the landlord moves it
// to accepted or declined exactly once.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// DefaultRoomType is applied when the student does not pick a room type.
const DefaultRoomType = "Single Room"

// Booking is a student's request for a room. Listing title and student
// name are denormalized at creation time so the landlord's request list
// renders without joins and survives listing edits.
type Booking struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	StudentName  string    `json:"studentName" db:"student_name"`
	LandlordID   int64     `json:"landlordId" db:"landlord_id"`
	ListingID    int64     `json:"listingId" db:"listing_id"`
	ListingTitle string    `json:"listingTitle" db:"listing_title"`
	RoomType     string    `json:"roomType" db:"room_type"`
	MoveInDate   time.Time `json:"moveInDate" db:"move_in_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateBookingRequest is the student's booking submission.
type CreateBookingRequest struct {
	ListingID  int64  `json:"listingId" validate:"required"`
	RoomType   string `json:"roomType" validate:"omitempty,max=60"`
	MoveInDate string `json:"moveInDate" validate:"required"`
}

// UpdateStatusRequest moves a pending booking to its final state.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// DashboardStats is the landlord home screen summary.
type DashboardStats struct {
	ActiveListings  int `json:"activeListings"`
	PendingRequests int `json:"pendingRequests"`
	TotalBookings   int `json:"totalBookings"`
	AcceptedCount   int `json:"acceptedCount"`
}
