package model

// Garden is a growing site owned by a single user.
type Garden struct {
	ID        int64
	Address   string
	Latitude  float64
	Longitude float64
	Category  string
	UserID    int64
}

// GardenWithOwner pairs a garden with its owner's stored address.
type GardenWithOwner struct {
	Garden
	OwnerAddress string
}

// GardenProducts is a garden together with every product it lists.
type GardenProducts struct {
	Garden
	Products []Product
}

// GardenRequest is the body of POST /horta and PUT /horta(s)/{id}.
type GardenRequest struct {
	Address  string `json:"address"`
	Category string `json:"category"`
}

// GardenResponse is a garden annotated with its travel distance.
type GardenResponse struct {
	ID             int64  `json:"id"`
	Category       string `json:"category"`
	Address        string `json:"address"`
	Distance       string `json:"distance"`
	DistanceMeters int    `json:"distance_meters,omitempty"`
	DistanceError  string `json:"distance_error,omitempty"`
}

// GardenProductsResponse is a garden with its nested product list.
type GardenProductsResponse struct {
	ID       int64             `json:"id"`
	Category string            `json:"category"`
	Address  string            `json:"address"`
	Products []ProductResponse `json:"products"`
}
