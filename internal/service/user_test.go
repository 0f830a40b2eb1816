package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hortaconecta/hortaconecta-go/internal/crypto"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

func TestUserList(t *testing.T) {
	env := newTestEnv(t, OriginOwner)

	_, err := env.users.List(context.Background())
	assert.ErrorIs(t, err, ErrNoUsers)

	env.register(t, "ana@example.com", "Rua A")
	list, err := env.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana@example.com", list[0].Email)
}

func TestUserGet(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")

	got, err := env.users.Get(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua A", got.Address)

	_, err = env.users.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdate(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	bia := env.register(t, "bia@example.com", "Rua B")
	ctx := context.Background()

	req := model.UpdateUserRequest{Name: "Ana Maria", Email: "ana@example.com", Address: "Rua Nova"}

	_, err := env.users.Update(ctx, bia.ID, ana.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := env.users.Update(ctx, ana.ID, ana.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)

	stored, err := env.store.Users().GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.PasswordHash, stored.PasswordHash)

	req.Password = "novasenha"
	_, err = env.users.Update(ctx, ana.ID, ana.ID, req)
	require.NoError(t, err)
	stored, err = env.store.Users().GetByID(ctx, ana.ID)
	require.NoError(t, err)
	ok, err := crypto.VerifyPassword("novasenha", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	req.Email = "bia@example.com"
	_, err = env.users.Update(ctx, ana.ID, ana.ID, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	bia := env.register(t, "bia@example.com", "Rua B")
	env.plantGarden(t, ana.ID, "Horta 1", "orgânico")
	ctx := context.Background()

	assert.ErrorIs(t, env.users.Delete(ctx, bia.ID, ana.ID), ErrForbidden)

	require.NotEmpty(t, env.sessions.Current(ana.ID))
	require.NoError(t, env.users.Delete(ctx, ana.ID, ana.ID))
	assert.Empty(t, env.sessions.Current(ana.ID))

	_, err := env.store.Gardens().GetByUserID(ctx, ana.ID)
	assert.Error(t, err)
	assert.ErrorIs(t, env.users.Delete(ctx, ana.ID, ana.ID), ErrUserNotFound)
}
