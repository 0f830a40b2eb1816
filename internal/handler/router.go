package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hortaconecta/hortaconecta-go/internal/middleware"
	"github.com/hortaconecta/hortaconecta-go/internal/service"
)

// Limits applied per client IP to /login and /register.
const (
	authRateLimit = 5
	authBurst     = 10
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	JWTSecret string
	Sessions  middleware.Sessions
	Auth      *service.AuthService
	Gardens   *service.GardenService
	Products  *service.ProductService
	Users     *service.UserService
}

// NewRouter builds the HTTP surface. ctx bounds background work owned by
// the router, such as rate limiter housekeeping.
func NewRouter(ctx context.Context, d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Auth)
	gardenHandler := NewGardenHandler(d.Gardens)
	productHandler := NewProductHandler(d.Products)
	userHandler := NewUserHandler(d.Users)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, authRateLimit, authBurst))
		r.Get("/login", authHandler.HandleLogin)
		r.Post("/register", authHandler.HandleRegister)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.JWTSecret, d.Sessions))

		r.Get("/logout", authHandler.HandleLogout)

		r.Post("/horta", gardenHandler.HandleCreate)
		r.Put("/horta/{id}", gardenHandler.HandleUpdateMine)
		r.Route("/hortas", func(r chi.Router) {
			r.Get("/", gardenHandler.HandleList)
			r.Delete("/", gardenHandler.HandleDeleteMine)
			r.Get("/products", gardenHandler.HandleListWithProducts)
			r.Get("/{id}", gardenHandler.HandleGet)
			r.Put("/{id}", gardenHandler.HandleUpdate)
			r.Delete("/{id}", gardenHandler.HandleDelete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.HandleList)
			r.Post("/", productHandler.HandleCreate)
			r.Get("/hortas", productHandler.HandleListWithGardens)
			r.Put("/{id}", productHandler.HandleUpdate)
			r.Delete("/{id}", productHandler.HandleDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.HandleList)
			r.Get("/{id}", userHandler.HandleGet)
			r.Put("/{id}", userHandler.HandleUpdate)
			r.Delete("/{id}", userHandler.HandleDelete)
		})
	})

	return r
}
