package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository/memory"
	"github.com/hortaconecta/hortaconecta-go/internal/session"
)

const testSecret = "test-secret"

// fakeMaps geocodes every address except those in failGeocode, and reports
// the distance of each route as the combined length of both addresses in km.
type fakeMaps struct {
	mu          sync.Mutex
	failGeocode map[string]error
	failRoute   map[string]error
	calls       []string
	delay       time.Duration
}

func newFakeMaps() *fakeMaps {
	return &fakeMaps{
		failGeocode: make(map[string]error),
		failRoute:   make(map[string]error),
	}
}

func (f *fakeMaps) Geocode(_ context.Context, address string) (geo.Coordinates, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failGeocode[address]; ok {
		return geo.Coordinates{}, err
	}
	return geo.Coordinates{Latitude: -23.5, Longitude: -46.6}, nil
}

func (f *fakeMaps) Distance(ctx context.Context, origin, destination string) (geo.Distance, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return geo.Distance{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, origin+"->"+destination)
	if err, ok := f.failRoute[destination]; ok {
		return geo.Distance{}, err
	}
	km := len(origin) + len(destination)
	return geo.Distance{Text: routeText(km), Meters: km * 1000}, nil
}

func (f *fakeMaps) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func routeText(km int) string {
	return strconv.Itoa(km) + " km"
}

type testEnv struct {
	store    *memory.Store
	maps     *fakeMaps
	sessions *session.Registry
	auth     *AuthService
	gardens  *GardenService
	products *ProductService
	users    *UserService
	distance *DistanceAggregator
}

func newTestEnv(t *testing.T, origin Origin) *testEnv {
	t.Helper()

	store := memory.New()
	maps := newFakeMaps()
	sessions := session.NewRegistry()
	agg := NewDistanceAggregator(store.Gardens(), store.Products(), maps, 2, origin)

	return &testEnv{
		store:    store,
		maps:     maps,
		sessions: sessions,
		auth:     NewAuthService(store.Users(), maps, sessions, testSecret, time.Hour),
		gardens:  NewGardenService(store.Gardens(), store.Users(), maps, agg),
		products: NewProductService(store.Products(), store.Gardens(), store.Users(), agg),
		users:    NewUserService(store.Users(), sessions),
		distance: agg,
	}
}

func (e *testEnv) register(t *testing.T, email, address string) *model.User {
	t.Helper()

	_, err := e.auth.Register(context.Background(), model.RegisterRequest{
		Name:     "Test " + email,
		Email:    email,
		Password: "secret123",
		Address:  address,
	})
	require.NoError(t, err)

	user, err := e.store.Users().GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}

func (e *testEnv) plantGarden(t *testing.T, userID int64, address, category string) model.Garden {
	t.Helper()

	g, err := e.gardens.Create(context.Background(), userID, model.GardenRequest{Address: address, Category: category})
	require.NoError(t, err)
	return g
}
