// internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidStatus   = errors.New("invalid verification status")
)

// Service interface
type Service interface {
	// CreateProfile satisfies the auth package's ProfileCreator so the
	// profile row is created together with the account.
	CreateProfile(ctx context.Context, userID int64, name, email, role string) error

	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	SetUniversity(ctx context.Context, userID int64, university string) (*Profile, error)
	SetVerificationStatus(ctx context.Context, userID int64, status string) error
}

type service struct {
	repo Repository
}

// NewService creates a new profile service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProfile(ctx context.Context, userID int64, name, email, role string) error {
	now := time.Now()
	p := &Profile{
		UserID:             userID,
		Name:               name,
		Email:              email,
		Role:               role,
		VerificationStatus: VerificationNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return s.repo.Create(ctx, p)
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// UpdateProfile applies a partial update: only the fields present in the
// request change, everything else is preserved.
func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.University != nil {
		p.University = req.University
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.PhotoURL != nil {
		p.PhotoURL = req.PhotoURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) SetUniversity(ctx context.Context, userID int64, university string) (*Profile, error) {
	return s.UpdateProfile(ctx, userID, &UpdateProfileRequest{University: &university})
}

func (s *service) SetVerificationStatus(ctx context.Context, userID int64, status string) error {
	switch status {
	case VerificationNone, VerificationPending, VerificationVerified, VerificationRejected:
	default:
		return ErrInvalidStatus
	}
	return s.repo.SetVerificationStatus(ctx, userID, status)
}
