package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
)

func seed(t *testing.T, s *Store) (owner, other model.User, garden model.Garden) {
	t.Helper()
	ctx := context.Background()

	owner = model.User{Name: "Ana", Email: "ana@example.com", Address: "Rua A"}
	other = model.User{Name: "Bia", Email: "bia@example.com", Address: "Rua B"}
	require.NoError(t, s.Users().Create(ctx, &owner))
	require.NoError(t, s.Users().Create(ctx, &other))

	garden = model.Garden{Address: "Rua G", Category: "orgânico", UserID: owner.ID}
	require.NoError(t, s.Gardens().Create(ctx, &garden))
	return owner, other, garden
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := New()
	seed(t, s)

	err := s.Users().Create(context.Background(), &model.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUsers_ExplicitIDKept(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := model.User{ID: 7, Email: "x@example.com"}
	require.NoError(t, s.Users().Create(ctx, &u))
	assert.Equal(t, int64(7), u.ID)

	got, err := s.Users().GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", got.Email)
}

func TestGardens_OnePerUser(t *testing.T) {
	s := New()
	owner, _, _ := seed(t, s)

	err := s.Gardens().Create(context.Background(), &model.Garden{UserID: owner.ID})
	assert.ErrorIs(t, err, repository.ErrGardenExists)

	list, err := s.Gardens().ListWithOwners(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rua A", list[0].OwnerAddress)
}

func TestGardens_OwnershipScopedMutations(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner, other, garden := seed(t, s)

	assert.ErrorIs(t, s.Gardens().UpdateOwned(ctx, garden.ID, other.ID, "x", "y"), repository.ErrGardenNotFound)
	require.NoError(t, s.Gardens().UpdateOwned(ctx, garden.ID, owner.ID, "Rua Nova", "misto"))

	g, err := s.Gardens().GetByID(ctx, garden.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua Nova", g.Address)

	assert.ErrorIs(t, s.Gardens().DeleteOwned(ctx, garden.ID, other.ID), repository.ErrGardenNotFound)
	require.NoError(t, s.Gardens().DeleteByUser(ctx, owner.ID))
	assert.ErrorIs(t, s.Gardens().DeleteByUser(ctx, owner.ID), repository.ErrGardenNotFound)
}

func TestProducts_CascadeAndOwnership(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner, other, garden := seed(t, s)

	p := model.Product{Name: "Alface", GardenID: garden.ID, Active: true}
	require.NoError(t, s.Products().Create(ctx, &p))

	p.Name = "Rúcula"
	assert.ErrorIs(t, s.Products().UpdateOwned(ctx, other.ID, &p), repository.ErrProductNotFound)
	require.NoError(t, s.Products().UpdateOwned(ctx, owner.ID, &p))

	joined, err := s.Products().ListWithGardens(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "Rúcula", joined[0].Name)
	assert.Equal(t, "Ana", joined[0].OwnerName)

	grouped, err := s.Gardens().ListWithProducts(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	assert.Len(t, grouped[0].Products, 1)

	require.NoError(t, s.Users().Delete(ctx, owner.ID))
	all, err := s.Products().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProducts_RequireGarden(t *testing.T) {
	s := New()
	err := s.Products().Create(context.Background(), &model.Product{Name: "x", GardenID: 99})
	assert.ErrorIs(t, err, repository.ErrGardenNotFound)
}
