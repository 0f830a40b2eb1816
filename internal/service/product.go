package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
)

var (
	ErrNoGarden              = errors.New("user does not own a garden")
	ErrProductNotFound       = errors.New("product not found or not owned by the user's garden")
	ErrNameRequired          = errors.New("name is required")
	ErrInvalidExpirationDate = errors.New("expiration_date must be formatted as YYYY-MM-DD")
)

// ProductService handles product business logic.
type ProductService struct {
	products   ProductStore
	gardens    GardenStore
	users      UserStore
	aggregator *DistanceAggregator
}

// NewProductService creates a new ProductService.
func NewProductService(products ProductStore, gardens GardenStore, users UserStore, aggregator *DistanceAggregator) *ProductService {
	return &ProductService{
		products:   products,
		gardens:    gardens,
		users:      users,
		aggregator: aggregator,
	}
}

// Create lists a product under the caller's garden.
func (s *ProductService) Create(ctx context.Context, userID int64, req model.ProductRequest) (model.ProductResponse, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return model.ProductResponse{}, err
	}

	garden, err := s.gardens.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGardenNotFound) {
			return model.ProductResponse{}, ErrNoGarden
		}
		return model.ProductResponse{}, err
	}

	product.GardenID = garden.ID
	if err := s.products.Create(ctx, &product); err != nil {
		if errors.Is(err, repository.ErrGardenNotFound) {
			return model.ProductResponse{}, ErrNoGarden
		}
		return model.ProductResponse{}, err
	}
	return productResponse(product), nil
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProductResponse, len(products))
	for i, p := range products {
		out[i] = productResponse(p)
	}
	return out, nil
}

// ListWithGardens returns every product with its garden's distance from the requester.
func (s *ProductService) ListWithGardens(ctx context.Context, requesterID int64) ([]model.ProductWithGardenResponse, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.aggregator.Products(ctx, requester.Address)
}

// Update overwrites product id when it belongs to the caller's garden.
func (s *ProductService) Update(ctx context.Context, userID, id int64, req model.ProductRequest) (model.ProductResponse, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return model.ProductResponse{}, err
	}
	product.ID = id

	if err := s.products.UpdateOwned(ctx, userID, &product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.ProductResponse{}, ErrProductNotFound
		}
		return model.ProductResponse{}, err
	}
	return productResponse(product), nil
}

// Delete removes product id when it belongs to the caller's garden.
func (s *ProductService) Delete(ctx context.Context, userID, id int64) error {
	err := s.products.DeleteOwned(ctx, id, userID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	return err
}

func productFromRequest(req model.ProductRequest) (model.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Product{}, ErrNameRequired
	}

	p := model.Product{
		Category:    req.Category,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.ExpirationDate != "" {
		t, err := time.Parse(model.DateLayout, req.ExpirationDate)
		if err != nil {
			return model.Product{}, ErrInvalidExpirationDate
		}
		p.ExpirationDate = &t
	}
	return p, nil
}

func productResponse(p model.Product) model.ProductResponse {
	resp := model.ProductResponse{
		ID:          p.ID,
		Category:    p.Category,
		Name:        p.Name,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		GardenID:    p.GardenID,
	}
	if p.ExpirationDate != nil {
		resp.ExpirationDate = p.ExpirationDate.Format(model.DateLayout)
	}
	return resp
}
