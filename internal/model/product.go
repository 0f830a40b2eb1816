package model

import "time"

// DateLayout is the wire format of product expiration dates.
const DateLayout = "2006-01-02"

// Product is a produce listing published by a garden.
type Product struct {
	ID             int64
	Category       string
	Name           string
	Quantity       float64
	Unit           string
	Description    string
	ExpirationDate *time.Time
	Price          float64
	Active         bool
	GardenID       int64
}

// ProductWithGarden is a product joined with its garden and the garden owner's name.
type ProductWithGarden struct {
	Product
	GardenAddress string
	OwnerName     string
}

// ProductRequest is the body of POST /products and PUT /products/{id}.
type ProductRequest struct {
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Description    string  `json:"description"`
	ExpirationDate string  `json:"expiration_date"`
	Price          float64 `json:"price"`
	Active         *bool   `json:"active"`
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ID             int64   `json:"id"`
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Description    string  `json:"description"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
	Price          float64 `json:"price"`
	Active         bool    `json:"active"`
	GardenID       int64   `json:"garden_id"`
}

// ProductGardenInfo is the garden block nested in a product listing.
type ProductGardenInfo struct {
	ID             int64  `json:"id"`
	Address        string `json:"address"`
	UserName       string `json:"user_name"`
	Distance       string `json:"distance"`
	DistanceMeters int    `json:"distance_meters,omitempty"`
	DistanceError  string `json:"distance_error,omitempty"`
}

// ProductWithGardenResponse is a product annotated with its garden's distance from the requester.
type ProductWithGardenResponse struct {
	ProductResponse
	Garden ProductGardenInfo `json:"horta"`
}

// MessageResponse is the generic JSON body for status replies.
type MessageResponse struct {
	Message string `json:"message"`
}
