// internal/profile/models.go
package profile

import "time"

// Profile is the public-facing account document. It is created alongside
// the user row at signup and carries the fields the mobile app renders on
// the profile and settings screens.
type Profile struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"userId" db:"user_id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	Role               string    `json:"role" db:"role"`
	University         *string   `json:"university,omitempty" db:"university"`
	Phone              *string   `json:"phone,omitempty" db:"phone"`
	PhotoURL           *string   `json:"photoURL,omitempty" db:"photo_url"`
	VerificationStatus string    `json:"verificationStatus" db:"verification_status"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// Verification status values
const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// UpdateProfileRequest holds the editable fields. Pointers distinguish
// "not sent" from "clear this field".
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	University *string `json:"university,omitempty" validate:"omitempty,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	PhotoURL   *string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

// SetUniversityRequest selects the student's university, which drives the
// map focus and distance filtering on the hostel search.
type SetUniversityRequest struct {
	University string `json:"university" validate:"required,max=120"`
}
