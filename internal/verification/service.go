// internal/verification/service.go
package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/unistaylk/unistay-backend/internal/profile"
)

// Common errors
var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrAlreadySubmitted     = errors.New("a verification is already pending review")
	ErrMissingNIC           = errors.New("NIC number is required")
)

// Notifier delivers the review decision to the user. The notifications
// service satisfies it.
type Notifier interface {
	VerificationDecided(ctx context.Context, userID int64, status string)
}

// SubmitRequest carries the form fields of a verification submission.
// Document photos arrive separately as multipart files.
type SubmitRequest struct {
	Role            string
	NIC             string
	StudentIDNumber string
	NICPhoto        *multipart.FileHeader
	StudentIDPhoto  *multipart.FileHeader
}

// Service interface
type Service interface {
	Submit(ctx context.Context, userID int64, req *SubmitRequest) (*Verification, error)
	GetStatus(ctx context.Context, userID int64) (*Verification, error)
	GetPending(ctx context.Context) ([]Verification, error)
	Review(ctx context.Context, id int64, status string) (*Verification, error)
}

type service struct {
	repo     Repository
	uploads  *UploadService
	profiles profile.Service
	notifier Notifier
}

// NewService creates a new verification service
func NewService(repo Repository, uploads *UploadService, profiles profile.Service, notifier Notifier) Service {
	return &service{
		repo:     repo,
		uploads:  uploads,
		profiles: profiles,
		notifier: notifier,
	}
}

// Submit records a verification request. Document photo uploads are best
// effort: a failed upload leaves the URL empty but the submission still
// goes through, so the reviewer can ask for a re-upload. As a side
// effect the profile badge moves to pending.
func (s *service) Submit(ctx context.Context, userID int64, req *SubmitRequest) (*Verification, error) {
	if req.NIC == "" {
		return nil, ErrMissingNIC
	}

	if existing, err := s.repo.GetByUserID(ctx, userID); err == nil && existing.Status == StatusPending {
		return nil, ErrAlreadySubmitted
	}

	now := time.Now()
	v := &Verification{
		UserID:    userID,
		Role:      req.Role,
		NIC:       req.NIC,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.StudentIDNumber != "" {
		v.StudentIDNumber = &req.StudentIDNumber
	}

	if url := s.uploadDocument(req.NICPhoto, userID, "nic"); url != "" {
		v.NICPhotoURL = &url
	}
	if url := s.uploadDocument(req.StudentIDPhoto, userID, "student_id"); url != "" {
		v.StudentIDPhotoURL = &url
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create verification: %w", err)
	}

	if err := s.profiles.SetVerificationStatus(ctx, userID, profile.VerificationPending); err != nil {
		log.Printf("⚠️ Failed to mark profile %d as pending verification: %v", userID, err)
	}

	return v, nil
}

// GetStatus returns the user's latest submission.
func (s *service) GetStatus(ctx context.Context, userID int64) (*Verification, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetPending lists submissions awaiting review, oldest first.
func (s *service) GetPending(ctx context.Context) ([]Verification, error) {
	return s.repo.GetPending(ctx)
}

// Review applies the admin decision, updates the profile badge and
// notifies the user.
func (s *service) Review(ctx context.Context, id int64, status string) (*Verification, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if err := s.profiles.SetVerificationStatus(ctx, v.UserID, status); err != nil {
		log.Printf("⚠️ Failed to update profile %d verification badge: %v", v.UserID, err)
	}

	v.Status = status
	now := time.Now()
	v.ReviewedAt = &now

	if s.notifier != nil {
		s.notifier.VerificationDecided(ctx, v.UserID, status)
	}

	return v, nil
}

func (s *service) uploadDocument(header *multipart.FileHeader, userID int64, docType string) string {
	if header == nil {
		return ""
	}

	file, err := header.Open()
	if err != nil {
		log.Printf("⚠️ Skipping unreadable %s photo for user %d: %v", docType, userID, err)
		return ""
	}
	defer file.Close()

	url, err := s.uploads.UploadDocument(file, header, userID, docType)
	if err != nil {
		log.Printf("⚠️ Failed to upload %s photo for user %d: %v", docType, userID, err)
		return ""
	}

	return url
}
