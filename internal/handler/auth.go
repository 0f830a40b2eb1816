package handler

import (
	"net/http"

	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleLogin handles GET /login requests. Credentials arrive in the
// email and password headers.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req := model.LoginRequest{
		Email:    r.Header.Get("email"),
		Password: r.Header.Get("password"),
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleLogout handles GET /logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	h.service.Logout(id)
	writeJSON(w, http.StatusOK, messageResponse("logout successful"))
}
