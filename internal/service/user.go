package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hortaconecta/hortaconecta-go/internal/crypto"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
)

var (
	ErrNoUsers   = errors.New("no users registered")
	ErrForbidden = errors.New("users may only change their own account")
)

// UserService handles user account management.
type UserService struct {
	users    UserStore
	sessions TokenStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, sessions TokenStore) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	out := make([]model.UserResponse, len(users))
	for i := range users {
		out[i] = userResponse(&users[i])
	}
	return out, nil
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return userResponse(user), nil
}

// Update changes the caller's own profile. An empty password keeps the current hash.
func (s *UserService) Update(ctx context.Context, callerID, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	if callerID != id {
		return model.UserResponse{}, ErrForbidden
	}
	if strings.TrimSpace(req.Email) == "" {
		return model.UserResponse{}, ErrEmailRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return model.UserResponse{}, ErrAddressRequired
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	user.Login = req.User
	user.Name = req.Name
	user.Email = strings.TrimSpace(req.Email)
	user.Address = req.Address
	if req.Password != "" {
		hash, err := crypto.HashPassword(req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		default:
			return model.UserResponse{}, err
		}
	}
	return userResponse(user), nil
}

// Delete removes the caller's own account and ends its session.
func (s *UserService) Delete(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.sessions.Revoke(id, s.sessions.Current(id))
	return nil
}

func userResponse(u *model.User) model.UserResponse {
	return model.UserResponse{
		ID:        u.ID,
		User:      u.Login,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
	}
}
