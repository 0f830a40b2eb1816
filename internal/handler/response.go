package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/middleware"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
	"github.com/hortaconecta/hortaconecta-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

var errInvalidID = errors.New("invalid id")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func messageResponse(msg string) model.MessageResponse {
	return model.MessageResponse{Message: msg}
}

// decodeJSON reads a JSON body into v and writes the error reply itself when it fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

func identity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("unauthenticated, no token provided"))
	}
	return id, ok
}

// writeError maps a service, storage or maps failure to a status code and message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var geoErr *geo.Error

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, messageResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, messageResponse(err.Error()))
	case errors.Is(err, errInvalidID),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrGardenExists),
		errors.Is(err, service.ErrNoGarden),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidExpirationDate):
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoUsers),
		errors.Is(err, service.ErrGardenNotFound),
		errors.Is(err, service.ErrNoGardens),
		errors.Is(err, service.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
	case errors.Is(err, geo.ErrAddressNotFound):
		writeJSON(w, http.StatusBadRequest, messageResponse("address not found"))
	case errors.As(err, &geoErr):
		slog.Error("maps provider failure", "op", geoErr.Op, "status", geoErr.Status, "error", err)
		writeJSON(w, http.StatusBadGateway, messageResponse(geoErr.Kind.Error()))
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse("internal server error"))
	}
}
