package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hortaconecta/hortaconecta-go/internal/service"
)

const devJWTSecret = "dev-secret-change-in-production"

// Storage backends.
const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	Port           string
	Env            string
	Storage        string
	DatabaseDSN    string
	MigrateOnStart bool

	JWTSecret string
	JWTExpiry time.Duration

	MapsAPIKey  string
	MapsBaseURL string
	MapsTimeout time.Duration

	DistanceWorkers      int
	GardenDistanceOrigin string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. Unparseable numbers
// and durations are reported together.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		Storage:              strings.ToLower(getEnv("STORAGE", StorageMySQL)),
		DatabaseDSN:          getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/hortaconecta?parseTime=true&clientFoundRows=true"),
		MigrateOnStart:       getBool("MIGRATE_ON_START", false, &errs),
		JWTSecret:            getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:            getDuration("JWT_EXPIRY", 24*time.Hour, &errs),
		MapsAPIKey:           os.Getenv("MAPS_API_KEY"),
		MapsBaseURL:          getEnv("MAPS_BASE_URL", "https://maps.googleapis.com"),
		MapsTimeout:          getDuration("MAPS_TIMEOUT", 10*time.Second, &errs),
		DistanceWorkers:      getInt("DISTANCE_WORKERS", 4, &errs),
		GardenDistanceOrigin: strings.ToLower(getEnv("GARDEN_DISTANCE_ORIGIN", string(service.OriginOwner))),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Storage != StorageMySQL && c.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMySQL, StorageMemory, c.Storage))
	}
	if c.Storage == StorageMySQL && c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required for mysql storage"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	if c.MapsTimeout < 0 {
		errs = append(errs, errors.New("MAPS_TIMEOUT must not be negative"))
	}
	if c.DistanceWorkers < 1 {
		errs = append(errs, errors.New("DISTANCE_WORKERS must be at least 1"))
	}
	if _, err := service.ParseOrigin(c.GardenDistanceOrigin); err != nil {
		errs = append(errs, fmt.Errorf("GARDEN_DISTANCE_ORIGIN: %w", err))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	if c.Env == "production" {
		if c.JWTSecret == devJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be set in production environment"))
		}
		if c.MapsAPIKey == "" {
			errs = append(errs, errors.New("MAPS_API_KEY must be set in production environment"))
		}
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
