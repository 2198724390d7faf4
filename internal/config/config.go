package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Station catalog backends.
const (
	CatalogMemory = "memory"
	CatalogMongo  = "mongo"
)

type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	DataPointAPIKey  string
	DataPointBaseURL string

	GoogleMapsAPIKey  string
	DirectionsBaseURL string
	DirectionsRegion  string

	// Station catalog backend and its seed/refresh settings.
	StationCatalog         string
	StationsFile           string
	MongoURI               string
	MongoDatabase          string
	CandidateLimit         int           // stations ranked per point (0 = all, memory only)
	CatalogRefreshInterval time.Duration // 0 disables the refresh job

	// In-memory report retention.
	StoreMaxHistory int           // max number of reports kept (0 = unlimited)
	StoreMaxAge     time.Duration // max age of reports (0 = unlimited)

	PipelineConcurrency int
	Location            *time.Location
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found or error loading it")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.DataPointAPIKey = os.Getenv("DATAPOINT_API_KEY")
	cfg.DataPointBaseURL = os.Getenv("DATAPOINT_BASE_URL")
	cfg.GoogleMapsAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.DirectionsBaseURL = os.Getenv("DIRECTIONS_BASE_URL")
	cfg.DirectionsRegion = getenvDefault("DIRECTIONS_REGION", "uk")

	cfg.StationCatalog = strings.ToLower(getenvDefault("STATION_CATALOG", CatalogMemory))
	if cfg.StationCatalog != CatalogMemory && cfg.StationCatalog != CatalogMongo {
		return nil, fmt.Errorf("invalid STATION_CATALOG %q: must be %s or %s", cfg.StationCatalog, CatalogMemory, CatalogMongo)
	}
	cfg.StationsFile = os.Getenv("STATIONS_FILE")
	cfg.MongoURI = getenvDefault("MONGODB_URI", "mongodb://localhost:27017/")
	cfg.MongoDatabase = getenvDefault("MONGODB_DATABASE", "travel_weather")
	cfg.CandidateLimit = getenvInt("CANDIDATE_LIMIT", 10)

	if cfg.CatalogRefreshInterval, err = getenvDuration("CATALOG_REFRESH_INTERVAL", "24h"); err != nil {
		return nil, err
	}

	// Report retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 100)
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	cfg.PipelineConcurrency = getenvInt("PIPELINE_CONCURRENCY", 4)

	tz := getenvDefault("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
