// internal/notifications/service_test.go
package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unistaylk/unistay-backend/internal/auth"
	"github.com/unistaylk/unistay-backend/internal/bookings"
	"github.com/unistaylk/unistay-backend/internal/profile"
)

type fakeUsers struct {
	users map[int64]*auth.User
}

func (f *fakeUsers) GetUserByID(_ context.Context, userID int64) (*auth.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

type fakeProfiles struct {
	profiles map[int64]*profile.Profile
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID int64) (*profile.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func phone(v string) *string { return &v }

func newTestNotifications() (*Service, *MockEmailProvider, *MockSMSProvider) {
	email := NewMockEmailProvider()
	sms := NewMockSMSProvider()

	users := &fakeUsers{users: map[int64]*auth.User{
		1:   {ID: 1, Name: "Nimal Perera", Email: "nimal@student.lk"},
		100: {ID: 100, Name: "Kumari Silva", Email: "kumari@landlord.lk"},
	}}
	profiles := &fakeProfiles{profiles: map[int64]*profile.Profile{
		1: {UserID: 1, Name: "Nimal Perera", Phone: phone("+94771234567")},
	}}

	return NewService(email, sms, users, profiles), email, sms
}

func sampleBooking(status string) *bookings.Booking {
	return &bookings.Booking{
		ID:           5,
		StudentID:    1,
		StudentName:  "Nimal Perera",
		LandlordID:   100,
		ListingID:    7,
		ListingTitle: "Lakeview Hostel",
		RoomType:     "Single Room",
		MoveInDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func TestBookingRequested(t *testing.T) {
	t.Run("Should email the landlord", func(t *testing.T) {
		svc, email, _ := newTestNotifications()

		svc.BookingRequested(context.Background(), sampleBooking(bookings.StatusPending))

		require.Len(t, email.SentEmails, 1)
		assert.Equal(t, "kumari@landlord.lk", email.SentEmails[0].To)
		assert.Contains(t, email.SentEmails[0].Subject, "Lakeview Hostel")
		assert.Contains(t, email.SentEmails[0].Body, "Nimal Perera")
	})

	t.Run("Should do nothing for an unknown landlord", func(t *testing.T) {
		svc, email, _ := newTestNotifications()
		b := sampleBooking(bookings.StatusPending)
		b.LandlordID = 999

		svc.BookingRequested(context.Background(), b)

		assert.Empty(t, email.SentEmails)
	})
}

func TestBookingDecided(t *testing.T) {
	t.Run("Should email and SMS the student on acceptance", func(t *testing.T) {
		svc, email, sms := newTestNotifications()

		svc.BookingDecided(context.Background(), sampleBooking(bookings.StatusAccepted))

		require.Len(t, email.SentEmails, 1)
		assert.Equal(t, "nimal@student.lk", email.SentEmails[0].To)
		assert.Contains(t, email.SentEmails[0].Subject, "accepted")

		require.Len(t, sms.SentMessages, 1)
		assert.Equal(t, "+94771234567", sms.SentMessages[0].To)
		assert.Contains(t, sms.SentMessages[0].Message, "Lakeview Hostel")
	})

	t.Run("Should only email on decline", func(t *testing.T) {
		svc, email, sms := newTestNotifications()

		svc.BookingDecided(context.Background(), sampleBooking(bookings.StatusDeclined))

		require.Len(t, email.SentEmails, 1)
		assert.Contains(t, email.SentEmails[0].Body, "declined")
		assert.Empty(t, sms.SentMessages)
	})
}

func TestVerificationDecided(t *testing.T) {
	t.Run("Should email the verified user", func(t *testing.T) {
		svc, email, _ := newTestNotifications()

		svc.VerificationDecided(context.Background(), 1, "verified")

		require.Len(t, email.SentEmails, 1)
		assert.Contains(t, email.SentEmails[0].Subject, "verified")
	})

	t.Run("Should email a rejection", func(t *testing.T) {
		svc, email, _ := newTestNotifications()

		svc.VerificationDecided(context.Background(), 1, "rejected")

		require.Len(t, email.SentEmails, 1)
		assert.Contains(t, email.SentEmails[0].Body, "re-submit")
	})
}
