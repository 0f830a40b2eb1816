package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hortaconecta/hortaconecta-go/internal/crypto"
	"github.com/hortaconecta/hortaconecta-go/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// Sessions reports the token a user is currently allowed to present.
type Sessions interface {
	Current(userID int64) string
}

// Authenticate returns middleware that admits a request only when its
// Authorization header carries a valid token that is also the user's
// current session token. Both "Bearer <token>" and a bare token are accepted.
func Authenticate(secret string, sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthenticated, no token provided")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			current := sessions.Current(claims.UserID)
			if current == "" || subtle.ConstantTimeCompare([]byte(current), []byte(token)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			id := model.Identity{UserID: claims.UserID, Email: claims.Email, Token: token}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return header
}

// WithIdentity attaches an authenticated caller to ctx.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.MessageResponse{Message: msg})
}
