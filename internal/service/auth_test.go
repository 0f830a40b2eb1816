package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hortaconecta/hortaconecta-go/internal/crypto"
	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t, OriginOwner)

	tests := []struct {
		name string
		req  model.RegisterRequest
		want error
	}{
		{"empty email", model.RegisterRequest{Password: "p", Address: "Rua A"}, ErrEmailRequired},
		{"blank email", model.RegisterRequest{Email: "  ", Password: "p", Address: "Rua A"}, ErrEmailRequired},
		{"empty password", model.RegisterRequest{Email: "a@x.com", Address: "Rua A"}, ErrPasswordRequired},
		{"empty address", model.RegisterRequest{Email: "a@x.com", Password: "p"}, ErrAddressRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	env := newTestEnv(t, OriginOwner)

	resp, err := env.auth.Register(context.Background(), model.RegisterRequest{
		User:     "ana",
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
		Address:  "Rua das Flores, 10",
	})
	require.NoError(t, err)
	assert.Equal(t, "registration successful", resp.Message)
	assert.NotEmpty(t, resp.Token)

	user, err := env.store.Users().GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Equal(t, -23.5, user.Latitude)

	ok, err := crypto.VerifyPassword("secret123", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, resp.Token, env.sessions.Current(user.ID))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	env.register(t, "ana@example.com", "Rua A")

	_, err := env.auth.Register(context.Background(), model.RegisterRequest{
		Email:    "ana@example.com",
		Password: "other",
		Address:  "Rua B",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_GeocodeFailureWritesNothing(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	env.maps.failGeocode["Lugar Nenhum"] = &geo.Error{Op: "geocode", Status: "ZERO_RESULTS", Kind: geo.ErrAddressNotFound}

	_, err := env.auth.Register(context.Background(), model.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secret123",
		Address:  "Lugar Nenhum",
	})
	require.ErrorIs(t, err, geo.ErrAddressNotFound)

	users, err := env.store.Users().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestVerifyCredentials(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	env.register(t, "ana@example.com", "Rua A")
	ctx := context.Background()

	assert.True(t, env.auth.VerifyCredentials(ctx, "ana@example.com", "secret123"))
	assert.False(t, env.auth.VerifyCredentials(ctx, "ana@example.com", "wrong"))
	assert.False(t, env.auth.VerifyCredentials(ctx, "nobody@example.com", "secret123"))
	assert.False(t, env.auth.VerifyCredentials(ctx, "", ""))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	env.register(t, "ana@example.com", "Rua A")

	_, err := env.auth.Login(context.Background(), model.LoginRequest{Email: "ana@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SecondLoginReplacesFirst(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	user := env.register(t, "ana@example.com", "Rua A")
	ctx := context.Background()
	creds := model.LoginRequest{Email: "ana@example.com", Password: "secret123"}

	first, err := env.auth.Login(ctx, creds)
	require.NoError(t, err)
	second, err := env.auth.Login(ctx, creds)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, second.Token, env.sessions.Current(user.ID))
}

func TestLogin_UsersHoldIndependentSessions(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	bia := env.register(t, "bia@example.com", "Rua B")
	ctx := context.Background()

	a, err := env.auth.Login(ctx, model.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	b, err := env.auth.Login(ctx, model.LoginRequest{Email: "bia@example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, a.Token, env.sessions.Current(ana.ID))
	assert.Equal(t, b.Token, env.sessions.Current(bia.ID))
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	user := env.register(t, "ana@example.com", "Rua A")

	resp, err := env.auth.Login(context.Background(), model.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	id := model.Identity{UserID: user.ID, Email: user.Email, Token: resp.Token}
	assert.True(t, env.auth.Logout(id))
	assert.Empty(t, env.sessions.Current(user.ID))
	assert.False(t, env.auth.Logout(id))
}
