package model

import "time"

// User represents a registered user in the database.
type User struct {
	ID           int64
	Login        string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Latitude     float64
	Longitude    float64
	CreatedAt    time.Time
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	ID       int64  `json:"id"`
	User     string `json:"user"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	User     string `json:"user"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// LoginRequest carries the credentials read from the login headers.
type LoginRequest struct {
	Email    string
	Password string
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID        int64   `json:"id"`
	User      string  `json:"user"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Identity is the authenticated caller attached to a request by the auth gate.
type Identity struct {
	UserID int64
	Email  string
	Token  string
}
