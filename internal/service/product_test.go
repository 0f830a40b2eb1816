package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

func TestProductCreate_RequiresGarden(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")

	_, err := env.products.Create(context.Background(), ana.ID, model.ProductRequest{Name: "Alface"})
	require.ErrorIs(t, err, ErrNoGarden)

	products, err := env.store.Products().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductCreate(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	g := env.plantGarden(t, ana.ID, "Horta 1", "orgânico")

	resp, err := env.products.Create(context.Background(), ana.ID, model.ProductRequest{
		Category:       "verdura",
		Name:           "Alface",
		Quantity:       2.5,
		Unit:           "kg",
		ExpirationDate: "2026-12-01",
		Price:          4.9,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, g.ID, resp.GardenID)
	assert.Equal(t, "2026-12-01", resp.ExpirationDate)
	assert.True(t, resp.Active)
}

func TestProductCreate_Validation(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	env.plantGarden(t, ana.ID, "Horta 1", "orgânico")

	_, err := env.products.Create(context.Background(), ana.ID, model.ProductRequest{Name: " "})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = env.products.Create(context.Background(), ana.ID, model.ProductRequest{Name: "Alface", ExpirationDate: "01/12/2026"})
	assert.ErrorIs(t, err, ErrInvalidExpirationDate)

	inactive := false
	resp, err := env.products.Create(context.Background(), ana.ID, model.ProductRequest{Name: "Couve", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.Empty(t, resp.ExpirationDate)
}

func TestProductListWithGardens(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	bia := env.register(t, "bia@example.com", "Rua Bia")
	env.plantGarden(t, ana.ID, "Horta 1", "orgânico")
	ctx := context.Background()

	_, err := env.products.Create(ctx, ana.ID, model.ProductRequest{Name: "Alface"})
	require.NoError(t, err)
	_, err = env.products.Create(ctx, ana.ID, model.ProductRequest{Name: "Couve"})
	require.NoError(t, err)

	list, err := env.products.ListWithGardens(ctx, bia.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alface", list[0].Name)
	assert.Equal(t, "Couve", list[1].Name)
	for _, p := range list {
		assert.Equal(t, "Horta 1", p.Garden.Address)
		assert.Equal(t, "Test ana@example.com", p.Garden.UserName)
		assert.NotEmpty(t, p.Garden.Distance)
	}
	// both products share one route
	assert.Equal(t, 1, env.maps.callCount())
	assert.Equal(t, []string{"Rua Bia->Horta 1"}, env.maps.calls)
}

func TestProductListWithGardens_DistanceFailureIsolated(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	bia := env.register(t, "bia@example.com", "Rua B")
	env.plantGarden(t, ana.ID, "Horta 1", "orgânico")
	env.plantGarden(t, bia.ID, "Horta Ilhada", "comunitária")
	env.maps.failRoute["Horta Ilhada"] = &geo.Error{Op: "directions", Status: "ZERO_RESULTS", Kind: geo.ErrRouteNotFound}
	ctx := context.Background()

	_, err := env.products.Create(ctx, ana.ID, model.ProductRequest{Name: "Alface"})
	require.NoError(t, err)
	_, err = env.products.Create(ctx, bia.ID, model.ProductRequest{Name: "Tomate"})
	require.NoError(t, err)

	list, err := env.products.ListWithGardens(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEmpty(t, list[0].Garden.Distance)
	assert.Empty(t, list[0].Garden.DistanceError)
	assert.Empty(t, list[1].Garden.Distance)
	assert.Contains(t, list[1].Garden.DistanceError, "no route")
}

func TestProductUpdateAndDelete_Ownership(t *testing.T) {
	env := newTestEnv(t, OriginOwner)
	ana := env.register(t, "ana@example.com", "Rua A")
	bia := env.register(t, "bia@example.com", "Rua B")
	env.plantGarden(t, ana.ID, "Horta 1", "orgânico")
	env.plantGarden(t, bia.ID, "Horta 2", "orgânico")
	ctx := context.Background()

	p, err := env.products.Create(ctx, ana.ID, model.ProductRequest{Name: "Alface"})
	require.NoError(t, err)

	_, err = env.products.Update(ctx, bia.ID, p.ID, model.ProductRequest{Name: "Roubada"})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, env.products.Delete(ctx, bia.ID, p.ID), ErrProductNotFound)

	updated, err := env.products.Update(ctx, ana.ID, p.ID, model.ProductRequest{Name: "Alface Crespa", Price: 3})
	require.NoError(t, err)
	assert.Equal(t, "Alface Crespa", updated.Name)

	require.NoError(t, env.products.Delete(ctx, ana.ID, p.ID))
	all, err := env.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
