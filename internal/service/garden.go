package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
)

var (
	ErrGardenExists   = errors.New("user already owns a garden")
	ErrGardenNotFound = errors.New("garden not found")
	ErrNoGardens      = errors.New("no gardens registered")
	ErrUserNotFound   = errors.New("user not found")
)

// GardenService handles garden business logic.
type GardenService struct {
	gardens    GardenStore
	users      UserStore
	geocoder   Geocoder
	aggregator *DistanceAggregator
}

// NewGardenService creates a new GardenService.
func NewGardenService(gardens GardenStore, users UserStore, geocoder Geocoder, aggregator *DistanceAggregator) *GardenService {
	return &GardenService{
		gardens:    gardens,
		users:      users,
		geocoder:   geocoder,
		aggregator: aggregator,
	}
}

// Create registers the caller's garden. A user may own at most one garden, and
// nothing is written unless the address geocodes.
func (s *GardenService) Create(ctx context.Context, userID int64, req model.GardenRequest) (model.Garden, error) {
	if strings.TrimSpace(req.Address) == "" {
		return model.Garden{}, ErrAddressRequired
	}

	if _, err := s.gardens.GetByUserID(ctx, userID); err == nil {
		return model.Garden{}, ErrGardenExists
	} else if !errors.Is(err, repository.ErrGardenNotFound) {
		return model.Garden{}, err
	}

	coords, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return model.Garden{}, err
	}

	garden := model.Garden{
		Address:   req.Address,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Category:  req.Category,
		UserID:    userID,
	}
	if err := s.gardens.Create(ctx, &garden); err != nil {
		if errors.Is(err, repository.ErrGardenExists) {
			return model.Garden{}, ErrGardenExists
		}
		return model.Garden{}, err
	}

	slog.Info("garden created", "garden_id", garden.ID, "user_id", userID)
	return garden, nil
}

// List returns every garden annotated with its distance.
func (s *GardenService) List(ctx context.Context, requesterID int64) ([]model.GardenResponse, error) {
	requester, err := s.requester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	gardens, err := s.aggregator.Gardens(ctx, requester.Address)
	if err != nil {
		return nil, err
	}
	if len(gardens) == 0 {
		return nil, ErrNoGardens
	}
	return gardens, nil
}

// ListWithProducts returns every garden with its products.
func (s *GardenService) ListWithProducts(ctx context.Context) ([]model.GardenProductsResponse, error) {
	gardens, err := s.gardens.ListWithProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(gardens) == 0 {
		return nil, ErrNoGardens
	}

	out := make([]model.GardenProductsResponse, len(gardens))
	for i, g := range gardens {
		products := make([]model.ProductResponse, len(g.Products))
		for j, p := range g.Products {
			products[j] = productResponse(p)
		}
		out[i] = model.GardenProductsResponse{
			ID:       g.ID,
			Category: g.Category,
			Address:  g.Address,
			Products: products,
		}
	}
	return out, nil
}

// Get returns one garden with its distance from the requester.
func (s *GardenService) Get(ctx context.Context, requesterID, id int64) (model.GardenResponse, error) {
	garden, err := s.gardens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGardenNotFound) {
			return model.GardenResponse{}, ErrGardenNotFound
		}
		return model.GardenResponse{}, err
	}

	requester, err := s.requester(ctx, requesterID)
	if err != nil {
		return model.GardenResponse{}, err
	}

	return s.aggregator.Garden(ctx, requester.Address, *garden)
}

// UpdateMine changes the caller's own garden.
func (s *GardenService) UpdateMine(ctx context.Context, userID int64, req model.GardenRequest) error {
	if strings.TrimSpace(req.Address) == "" {
		return ErrAddressRequired
	}
	return gardenErr(s.gardens.UpdateByUser(ctx, userID, req.Address, req.Category))
}

// Update changes garden id when the caller owns it.
func (s *GardenService) Update(ctx context.Context, userID, id int64, req model.GardenRequest) error {
	if strings.TrimSpace(req.Address) == "" {
		return ErrAddressRequired
	}
	return gardenErr(s.gardens.UpdateOwned(ctx, id, userID, req.Address, req.Category))
}

// DeleteMine removes the caller's own garden and its products.
func (s *GardenService) DeleteMine(ctx context.Context, userID int64) error {
	return gardenErr(s.gardens.DeleteByUser(ctx, userID))
}

// Delete removes garden id when the caller owns it.
func (s *GardenService) Delete(ctx context.Context, userID, id int64) error {
	return gardenErr(s.gardens.DeleteOwned(ctx, id, userID))
}

func (s *GardenService) requester(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func gardenErr(err error) error {
	if errors.Is(err, repository.ErrGardenNotFound) {
		return ErrGardenNotFound
	}
	return err
}
