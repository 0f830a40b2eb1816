package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hortaconecta/hortaconecta-go/internal/config"
	"github.com/hortaconecta/hortaconecta-go/internal/geo"
	"github.com/hortaconecta/hortaconecta-go/internal/handler"
	"github.com/hortaconecta/hortaconecta-go/internal/repository"
	"github.com/hortaconecta/hortaconecta-go/internal/repository/memory"
	"github.com/hortaconecta/hortaconecta-go/internal/service"
	"github.com/hortaconecta/hortaconecta-go/internal/session"
)

type stores struct {
	users    service.UserStore
	gardens  service.GardenStore
	products service.ProductStore
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		slog.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	st, db, err := openStores(cfg)
	if err != nil {
		slog.Error("storage setup failed", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	origin, err := service.ParseOrigin(cfg.GardenDistanceOrigin)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	maps := geo.NewClient(cfg.MapsBaseURL, cfg.MapsAPIKey, cfg.MapsTimeout)
	sessions := session.NewRegistry()
	aggregator := service.NewDistanceAggregator(st.gardens, st.products, maps, cfg.DistanceWorkers, origin)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	router := handler.NewRouter(ctx, handler.Deps{
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessions,
		Auth:      service.NewAuthService(st.users, maps, sessions, cfg.JWTSecret, cfg.JWTExpiry),
		Gardens:   service.NewGardenService(st.gardens, st.users, maps, aggregator),
		Products:  service.NewProductService(st.products, st.gardens, st.users, aggregator),
		Users:     service.NewUserService(st.users, sessions),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage", cfg.Storage, "distance_origin", origin)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func openStores(cfg config.Config) (stores, *sql.DB, error) {
	if cfg.Storage == config.StorageMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		m := memory.New()
		return stores{users: m.Users(), gardens: m.Gardens(), products: m.Products()}, nil, nil
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		return stores{}, nil, err
	}

	if cfg.MigrateOnStart {
		if err := repository.Migrate(db); err != nil {
			db.Close()
			return stores{}, nil, err
		}
		slog.Info("database migrations applied")
	}

	return stores{
		users:    repository.NewUserRepository(db),
		gardens:  repository.NewGardenRepository(db),
		products: repository.NewProductRepository(db),
	}, db, nil
}
