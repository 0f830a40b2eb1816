package service

import (
	"context"
	"time"

	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// GardenStore persists gardens. Create must reject a second garden for the same user.
type GardenStore interface {
	Create(ctx context.Context, garden *model.Garden) error
	GetByID(ctx context.Context, id int64) (*model.Garden, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Garden, error)
	ListWithOwners(ctx context.Context) ([]model.GardenWithOwner, error)
	ListWithProducts(ctx context.Context) ([]model.GardenProducts, error)
	UpdateByUser(ctx context.Context, userID int64, address, category string) error
	UpdateOwned(ctx context.Context, id, userID int64, address, category string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteOwned(ctx context.Context, id, userID int64) error
}

// ProductStore persists products. Mutations are scoped to the owner of the product's garden.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	List(ctx context.Context) ([]model.Product, error)
	ListWithGardens(ctx context.Context) ([]model.ProductWithGarden, error)
	UpdateOwned(ctx context.Context, userID int64, p *model.Product) error
	DeleteOwned(ctx context.Context, id, userID int64) error
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinates, error)
}

// DistanceResolver returns the travel distance between two addresses.
type DistanceResolver interface {
	Distance(ctx context.Context, origin, destination string) (geo.Distance, error)
}

// TokenStore tracks the live session token of each user.
type TokenStore interface {
	Store(userID int64, token string, expiresAt time.Time)
	Current(userID int64) string
	Revoke(userID int64, token string) bool
}
