// internal/profile/service_test.go
package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID   int64
	profiles map[int64]*Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, profiles: make(map[int64]*Profile)}
}

func (r *fakeRepo) Create(_ context.Context, p *Profile) error {
	p.ID = r.nextID
	r.nextID++
	copied := *p
	r.profiles[p.UserID] = &copied
	return nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID int64) (*Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) Update(_ context.Context, p *Profile) error {
	if _, ok := r.profiles[p.UserID]; !ok {
		return ErrProfileNotFound
	}
	copied := *p
	r.profiles[p.UserID] = &copied
	return nil
}

func (r *fakeRepo) SetVerificationStatus(_ context.Context, userID int64, status string) error {
	p, ok := r.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.VerificationStatus = status
	return nil
}

func str(v string) *string { return &v }

func TestCreateProfile(t *testing.T) {
	t.Run("Should start unverified", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		ctx := context.Background()

		err := svc.CreateProfile(ctx, 1, "Nimal Perera", "nimal@student.lk", "student")
		require.NoError(t, err)

		p, err := svc.GetProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, VerificationNone, p.VerificationStatus)
		assert.Equal(t, "student", p.Role)
		assert.Nil(t, p.University)
	})
}

func TestUpdateProfile(t *testing.T) {
	newProfile := func(t *testing.T) (Service, context.Context) {
		svc := NewService(newFakeRepo())
		ctx := context.Background()
		require.NoError(t, svc.CreateProfile(ctx, 1, "Nimal Perera", "nimal@student.lk", "student"))
		return svc, ctx
	}

	t.Run("Should only change the fields sent", func(t *testing.T) {
		svc, ctx := newProfile(t)

		p, err := svc.UpdateProfile(ctx, 1, &UpdateProfileRequest{
			Phone: str("+94771234567"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Nimal Perera", p.Name)
		require.NotNil(t, p.Phone)
		assert.Equal(t, "+94771234567", *p.Phone)
	})

	t.Run("Should set the university", func(t *testing.T) {
		svc, ctx := newProfile(t)

		p, err := svc.SetUniversity(ctx, 1, "University of Moratuwa")

		require.NoError(t, err)
		require.NotNil(t, p.University)
		assert.Equal(t, "University of Moratuwa", *p.University)
	})

	t.Run("Should return not found for a missing profile", func(t *testing.T) {
		svc, ctx := newProfile(t)

		_, err := svc.UpdateProfile(ctx, 42, &UpdateProfileRequest{Name: str("X")})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestSetVerificationStatus(t *testing.T) {
	t.Run("Should accept the known statuses", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		ctx := context.Background()
		require.NoError(t, svc.CreateProfile(ctx, 1, "Nimal", "n@x.lk", "student"))

		for _, status := range []string{VerificationPending, VerificationVerified, VerificationRejected, VerificationNone} {
			require.NoError(t, svc.SetVerificationStatus(ctx, 1, status))

			p, err := svc.GetProfile(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, status, p.VerificationStatus)
		}
	})

	t.Run("Should reject an unknown status", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		ctx := context.Background()
		require.NoError(t, svc.CreateProfile(ctx, 1, "Nimal", "n@x.lk", "student"))

		err := svc.SetVerificationStatus(ctx, 1, "approved")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
