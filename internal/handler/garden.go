package handler

import (
	"net/http"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/service"
)

// GardenHandler handles HTTP requests for gardens.
type GardenHandler struct {
	service *service.GardenService
}

// NewGardenHandler creates a new GardenHandler.
func NewGardenHandler(svc *service.GardenService) *GardenHandler {
	return &GardenHandler{service: svc}
}

// HandleList handles GET /hortas requests.
func (h *GardenHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	gardens, err := h.service.List(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gardens)
}

// HandleListWithProducts handles GET /hortas/products requests.
func (h *GardenHandler) HandleListWithProducts(w http.ResponseWriter, r *http.Request) {
	gardens, err := h.service.ListWithProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gardens)
}

// HandleGet handles GET /hortas/{id} requests.
func (h *GardenHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	gardenID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	garden, err := h.service.Get(r.Context(), id.UserID, gardenID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, garden)
}

// HandleCreate handles POST /horta requests.
func (h *GardenHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req model.GardenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.service.Create(r.Context(), id.UserID, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("garden created"))
}

// HandleUpdateMine handles PUT /horta/{id} requests. It always targets the
// caller's own garden; the path id is ignored.
func (h *GardenHandler) HandleUpdateMine(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req model.GardenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateMine(r.Context(), id.UserID, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("garden updated"))
}

// HandleUpdate handles PUT /hortas/{id} requests.
func (h *GardenHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	gardenID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.GardenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), id.UserID, gardenID, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("garden updated"))
}

// HandleDeleteMine handles DELETE /hortas requests.
func (h *GardenHandler) HandleDeleteMine(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMine(r.Context(), id.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("garden deleted"))
}

// HandleDelete handles DELETE /hortas/{id} requests.
func (h *GardenHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	gardenID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id.UserID, gardenID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("garden deleted"))
}
