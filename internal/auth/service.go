// internal/auth/service.go
// Service layer contains all business logic for authentication.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/unistaylk/unistay-backend/internal/common/utils"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts, try again later")
)

// ProfileCreator is implemented by the profile service. Signup creates the
// profile document as a side effect, matching the signup screen flow where
// the account and its profile are created together.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, userID int64, name, email, role string) error
}

// Service interface
type Service interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error)
	GoogleAuth(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error)

	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	Logout(ctx context.Context, token string) error
	LogoutAllDevices(ctx context.Context, userID int64) error

	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

// service implementation
type service struct {
	repo     Repository
	redis    *redis.Client
	profiles ProfileCreator
	config   *Config
}

// Config holds service configuration
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
	GoogleClientID     string
	MaxSigninAttempts  int
	AttemptWindow      time.Duration
}

// NewService creates a new auth service
func NewService(repo Repository, redisClient *redis.Client, profiles ProfileCreator, config *Config) Service {
	if config.MaxSigninAttempts <= 0 {
		config.MaxSigninAttempts = 5
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = 15 * time.Minute
	}
	return &service{
		repo:     repo,
		redis:    redisClient,
		profiles: profiles,
		config:   config,
	}
}

// Signup creates a new account plus its profile document
func (s *service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	// 1. Validate passwords
	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	// 2. Normalize inputs
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	// 3. Check if email exists
	if taken, err := s.repo.IsEmailTaken(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailAlreadyExists
	}

	// 4. Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashedPasswordStr := string(hashedPassword)

	// 5. Create user
	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: &hashedPasswordStr,
		Role:         req.Role,
		Provider:     "local",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// 6. Create the profile document
	if s.profiles != nil {
		if err := s.profiles.CreateProfile(ctx, user.ID, name, email, req.Role); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	}

	// 7. Issue tokens
	return s.createAuthSession(ctx, user)
}

// Signin authenticates a user with email and password
func (s *service) Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Throttle repeated failures
	if s.isThrottled(ctx, email) {
		return nil, ErrTooManyAttempts
	}

	// 2. Find user
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	// 3. Check it's a password-based account
	if user.PasswordHash == nil {
		return nil, errors.New("this account uses Google sign-in")
	}

	// 4. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	// 5. Clear failed attempts
	s.clearFailedAttempts(ctx, email)

	return s.createAuthSession(ctx, user)
}

// GoogleAuth verifies a Google ID token and signs the user in,
// creating the account on first sign-in
func (s *service) GoogleAuth(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error) {
	// 1. Verify Google ID token
	oauth2Service, err := oauth2.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	tokenInfo, err := oauth2Service.Tokeninfo().IdToken(req.IDToken).Do()
	if err != nil {
		return nil, fmt.Errorf("invalid Google token: %w", err)
	}

	if s.config.GoogleClientID != "" && tokenInfo.Audience != s.config.GoogleClientID {
		return nil, ErrInvalidToken
	}

	// 2. Look up or create the user
	user, err := s.repo.GetUserByEmail(ctx, tokenInfo.Email)
	if err != nil {
		role := req.Role
		if role == "" {
			role = "student"
		}

		name := nameFromEmail(tokenInfo.Email)
		user = &User{
			Name:       name,
			Email:      tokenInfo.Email,
			Role:       role,
			Provider:   "google",
			ProviderID: &tokenInfo.UserId,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}

		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		if s.profiles != nil {
			if err := s.profiles.CreateProfile(ctx, user.ID, name, tokenInfo.Email, role); err != nil {
				return nil, fmt.Errorf("failed to create profile: %w", err)
			}
		}
	} else if user.Provider == "local" {
		// Link the Google identity to the existing local account
		user.Provider = "google"
		user.ProviderID = &tokenInfo.UserId
		s.repo.UpdateUser(ctx, user)
	}

	// 3. Create session
	return s.createAuthSession(ctx, user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return s.createAuthSession(ctx, user)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	if s.isBlacklisted(ctx, token) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Logout revokes the access token: the session row is removed and the
// token goes on the Redis blacklist for its remaining lifetime, so it
// stops authenticating before it expires. Without Redis, revocation is
// session-only and the token ages out at its expiry.
func (s *service) Logout(ctx context.Context, token string) error {
	if err := s.repo.DeleteSessionByToken(ctx, token); err != nil {
		return err
	}
	s.blacklistToken(ctx, token)
	return nil
}

func (s *service) LogoutAllDevices(ctx context.Context, userID int64) error {
	return s.repo.DeleteUserSessions(ctx, userID)
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// Helper functions

func (s *service) createAuthSession(ctx context.Context, user *User) (*AuthResponse, error) {
	accessToken, err := s.generateToken(user, "access", s.config.AccessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(user, "refresh", s.config.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.config.AccessTokenExpiry),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenExpiry.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func (s *service) generateToken(user *User, tokenType string, expiry time.Duration) (string, error) {
	claims := &utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Type:      tokenType,
		ExpiresAt: time.Now().Add(expiry).Unix(),
		IssuedAt:  time.Now().Unix(),
		NotBefore: time.Now().Unix(),
		Issuer:    "unistay-backend",
		Subject:   fmt.Sprintf("%d", user.ID),
	}

	return utils.GenerateJWT(claims, s.config.JWTSecret)
}

func (s *service) blacklistToken(ctx context.Context, token string) {
	if s.redis == nil {
		return
	}

	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return
	}

	// Key the entry to the token's own remaining lifetime so the
	// blacklist cleans itself up
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return
	}
	s.redis.Set(ctx, "blacklist:"+token, 1, ttl)
}

func (s *service) isBlacklisted(ctx context.Context, token string) bool {
	if s.redis == nil {
		return false
	}
	n, err := s.redis.Exists(ctx, "blacklist:"+token).Result()
	return err == nil && n > 0
}

func (s *service) isThrottled(ctx context.Context, email string) bool {
	if s.redis == nil {
		return false
	}
	count, err := s.redis.Get(ctx, "failed:"+email).Int()
	return err == nil && count >= s.config.MaxSigninAttempts
}

func (s *service) recordFailedAttempt(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	key := "failed:" + email
	s.redis.Incr(ctx, key)
	s.redis.Expire(ctx, key, s.config.AttemptWindow)
}

func (s *service) clearFailedAttempts(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, "failed:"+email)
}

func nameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}
