// internal/verification/models.go
package verification

import "time"

// Verification statuses mirror the profile badge states.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Verification is an identity verification submission: the user's NIC
// (national identity card) number and, for students, their student ID,
// plus photos of both documents.
type Verification struct {
	ID                int64      `json:"id" db:"id"`
	UserID            int64      `json:"userId" db:"user_id"`
	Role              string     `json:"role" db:"role"`
	NIC               string     `json:"nic" db:"nic"`
	StudentIDNumber   *string    `json:"studentId,omitempty" db:"student_id_number"`
	NICPhotoURL       *string    `json:"nicPhotoURL,omitempty" db:"nic_photo_url"`
	StudentIDPhotoURL *string    `json:"studentIdPhotoURL,omitempty" db:"student_id_photo_url"`
	Status            string     `json:"status" db:"status"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// ReviewRequest is the admin decision on a submission.
type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
}
