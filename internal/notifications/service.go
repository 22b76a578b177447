// internal/notifications/service.go
package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/unistaylk/unistay-backend/internal/auth"
	"github.com/unistaylk/unistay-backend/internal/bookings"
	"github.com/unistaylk/unistay-backend/internal/profile"
)

// UserDirectory resolves a user ID to its account for addressing.
// The auth service satisfies it.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID int64) (*auth.User, error)
}

// ProfileDirectory resolves a user ID to its profile, which carries the
// phone number for SMS delivery. The profile service satisfies it.
type ProfileDirectory interface {
	GetProfile(ctx context.Context, userID int64) (*profile.Profile, error)
}

// Service sends transactional emails and SMS for booking and
// verification events. Every send is best effort: a delivery failure is
// logged, never propagated, so notifications can never fail the
// triggering request.
type Service struct {
	email    EmailProvider
	sms      SMSProvider
	users    UserDirectory
	profiles ProfileDirectory
}

func NewService(email EmailProvider, sms SMSProvider, users UserDirectory, profiles ProfileDirectory) *Service {
	return &Service{
		email:    email,
		sms:      sms,
		users:    users,
		profiles: profiles,
	}
}

// BookingRequested emails the landlord about a new booking request.
func (s *Service) BookingRequested(ctx context.Context, b *bookings.Booking) {
	landlord, err := s.users.GetUserByID(ctx, b.LandlordID)
	if err != nil {
		log.Printf("⚠️ Booking notification: landlord %d not found: %v", b.LandlordID, err)
		return
	}

	s.send(ctx, &EmailMessage{
		To:      landlord.Email,
		Subject: "New booking request - " + b.ListingTitle,
		Body: fmt.Sprintf(
			"%s has requested a %s at %s, moving in on %s.\n\nOpen the UniStay app to accept or decline the request.",
			b.StudentName, b.RoomType, b.ListingTitle, b.MoveInDate.Format("2 January 2006")),
	})
}

// BookingDecided emails the student the landlord's decision.
func (s *Service) BookingDecided(ctx context.Context, b *bookings.Booking) {
	student, err := s.users.GetUserByID(ctx, b.StudentID)
	if err != nil {
		log.Printf("⚠️ Booking notification: student %d not found: %v", b.StudentID, err)
		return
	}

	var subject, body string
	if b.Status == bookings.StatusAccepted {
		subject = "Booking accepted - " + b.ListingTitle
		body = fmt.Sprintf(
			"Good news! Your booking request for %s has been accepted.\n\nMove-in date: %s",
			b.ListingTitle, b.MoveInDate.Format("2 January 2006"))
	} else {
		subject = "Booking update - " + b.ListingTitle
		body = fmt.Sprintf(
			"Unfortunately your booking request for %s was declined.\n\nKeep searching - new hostels are listed every week.",
			b.ListingTitle)
	}

	s.send(ctx, &EmailMessage{To: student.Email, Subject: subject, Body: body})

	// Accepted bookings also get an SMS when the student has a phone
	// number on file, so the news lands even with email unread
	if b.Status == bookings.StatusAccepted {
		s.sendSMSTo(ctx, b.StudentID,
			fmt.Sprintf("UniStay: your booking for %s was accepted! Move-in: %s.",
				b.ListingTitle, b.MoveInDate.Format("2 Jan 2006")))
	}
}

// VerificationDecided emails the user the outcome of their identity
// verification review.
func (s *Service) VerificationDecided(ctx context.Context, userID int64, status string) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Verification notification: user %d not found: %v", userID, err)
		return
	}

	var subject, body string
	if status == "verified" {
		subject = "Your UniStay account is verified"
		body = "Your identity documents have been approved. Your profile now shows the verified badge."
	} else {
		subject = "Verification update"
		body = "We could not verify your submitted documents. Please re-submit clear photos of your NIC and student ID."
	}

	s.send(ctx, &EmailMessage{To: user.Email, Subject: subject, Body: body})
}

func (s *Service) send(ctx context.Context, msg *EmailMessage) {
	if s.email == nil {
		return
	}
	if err := s.email.SendEmail(ctx, msg); err != nil {
		log.Printf("⚠️ Failed to send email to %s: %v", msg.To, err)
	}
}

func (s *Service) sendSMSTo(ctx context.Context, userID int64, message string) {
	if s.sms == nil || s.profiles == nil {
		return
	}

	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil || p.Phone == nil || *p.Phone == "" {
		return
	}

	if err := s.sms.SendSMS(ctx, &SMSMessage{To: *p.Phone, Message: message}); err != nil {
		log.Printf("⚠️ Failed to send SMS to user %d: %v", userID, err)
	}
}
