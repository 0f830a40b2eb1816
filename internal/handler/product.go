package handler

import (
	"net/http"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/service"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// HandleList handles GET /products requests.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleListWithGardens handles GET /products/hortas requests.
func (h *ProductHandler) HandleListWithGardens(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	products, err := h.service.ListWithGardens(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleCreate handles POST /products requests.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req model.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.Create(r.Context(), id.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// HandleUpdate handles PUT /products/{id} requests.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.Update(r.Context(), id.UserID, productID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleDelete handles DELETE /products/{id} requests.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id.UserID, productID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("product deleted"))
}
