package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hortaconecta/hortaconecta-go/internal/crypto"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrAddressRequired    = errors.New("address is required")
	ErrEmailTaken         = errors.New("user is already registered")
)

// AuthService handles credential checks, registration and token issuance.
type AuthService struct {
	users     UserStore
	geocoder  Geocoder
	sessions  TokenStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, geocoder Geocoder, sessions TokenStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		geocoder:  geocoder,
		sessions:  sessions,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// VerifyCredentials reports whether password matches the stored hash of the
// user with the given email. Lookup and hash errors are logged and count as a mismatch.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) bool {
	if email == "" || password == "" {
		return false
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.Error("credential lookup failed", "error", err)
		}
		return false
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("credential check failed", "user_id", user.ID, "error", err)
		return false
	}
	return match
}

// IssueToken signs a token for the user with the given email and makes it
// that user's only valid session.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (string, error) {
	token, expiresAt, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return "", err
	}
	s.sessions.Store(user.ID, token, expiresAt)
	return token, nil
}

// Login authenticates a user and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	if !s.VerifyCredentials(ctx, req.Email, req.Password) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, req.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}
	return model.TokenResponse{Token: token}, nil
}

// Register creates a user account. The address is geocoded before anything is
// written, so a geocoding failure leaves no user row behind.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return model.RegisterResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.RegisterResponse{}, ErrPasswordRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return model.RegisterResponse{}, ErrAddressRequired
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return model.RegisterResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.RegisterResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	coords, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	user := &model.User{
		ID:           req.ID,
		Login:        req.User,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.RegisterResponse{}, ErrEmailTaken
		}
		return model.RegisterResponse{}, err
	}

	token, err := s.issue(user)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return model.RegisterResponse{
		Message: "registration successful",
		Token:   token,
	}, nil
}

// Logout revokes the caller's session token.
func (s *AuthService) Logout(id model.Identity) bool {
	return s.sessions.Revoke(id.UserID, id.Token)
}
