// internal/auth/service_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	nextID   int64
	users    map[string]*User    // keyed by email
	sessions map[string]*Session // keyed by access token
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:   1,
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

func (r *fakeRepo) CreateUser(_ context.Context, user *User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id int64) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeRepo) UpdateUser(_ context.Context, user *User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeRepo) CreateSession(_ context.Context, session *Session) error {
	session.ID = r.nextID
	r.nextID++
	copied := *session
	r.sessions[session.Token] = &copied
	return nil
}

func (r *fakeRepo) GetSessionByRefreshToken(_ context.Context, refreshToken string) (*Session, error) {
	for _, s := range r.sessions {
		if s.RefreshToken == refreshToken {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrInvalidToken
}

func (r *fakeRepo) DeleteSessionByToken(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeRepo) DeleteUserSessions(_ context.Context, userID int64) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func testRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newTestService(redisClient *redis.Client) (Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, redisClient, nil, &Config{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         bcrypt.MinCost,
	})
	return svc, repo
}

func signupStudent(t *testing.T, svc Service) *AuthResponse {
	resp, err := svc.Signup(context.Background(), &SignupRequest{
		Name:            "Nimal Perera",
		Email:           "nimal@student.lk",
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            "student",
	})
	require.NoError(t, err)
	return resp
}

func TestLogout(t *testing.T) {
	t.Run("Should reject a logged-out access token", func(t *testing.T) {
		svc, repo := newTestService(testRedis(t))
		ctx := context.Background()
		resp := signupStudent(t, svc)

		_, err := svc.ValidateToken(ctx, resp.AccessToken)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, resp.AccessToken))

		_, err = svc.ValidateToken(ctx, resp.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Empty(t, repo.sessions)
	})

	t.Run("Should not affect other tokens", func(t *testing.T) {
		svc, _ := newTestService(testRedis(t))
		ctx := context.Background()
		first := signupStudent(t, svc)

		second, err := svc.Signin(ctx, &SigninRequest{
			Email:    "nimal@student.lk",
			Password: "password123",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, first.AccessToken))

		_, err = svc.ValidateToken(ctx, second.AccessToken)
		assert.NoError(t, err)
	})

	t.Run("Should still revoke the session without Redis", func(t *testing.T) {
		svc, repo := newTestService(nil)
		ctx := context.Background()
		resp := signupStudent(t, svc)

		require.NoError(t, svc.Logout(ctx, resp.AccessToken))
		assert.Empty(t, repo.sessions)

		// Without a blacklist the stateless token stays valid until
		// it expires
		_, err := svc.ValidateToken(ctx, resp.AccessToken)
		assert.NoError(t, err)
	})
}

func TestSignin(t *testing.T) {
	t.Run("Should reject a wrong password", func(t *testing.T) {
		svc, _ := newTestService(nil)
		signupStudent(t, svc)

		_, err := svc.Signin(context.Background(), &SigninRequest{
			Email:    "nimal@student.lk",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Should throttle after repeated failures", func(t *testing.T) {
		svc, _ := newTestService(testRedis(t))
		ctx := context.Background()
		signupStudent(t, svc)

		bad := &SigninRequest{Email: "nimal@student.lk", Password: "wrong-password"}
		for i := 0; i < 5; i++ {
			_, err := svc.Signin(ctx, bad)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}

		_, err := svc.Signin(ctx, bad)
		assert.ErrorIs(t, err, ErrTooManyAttempts)

		// Even the correct password is refused while throttled
		_, err = svc.Signin(ctx, &SigninRequest{
			Email:    "nimal@student.lk",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrTooManyAttempts)
	})
}

func TestSignup(t *testing.T) {
	t.Run("Should reject a duplicate email", func(t *testing.T) {
		svc, _ := newTestService(nil)
		signupStudent(t, svc)

		_, err := svc.Signup(context.Background(), &SignupRequest{
			Name:            "Someone Else",
			Email:           "nimal@student.lk",
			Password:        "password123",
			ConfirmPassword: "password123",
			Role:            "landlord",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}
