// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings for the service and CLI.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DatabaseURL is the Postgres connection string. Empty disables
	// lookup history persistence.
	DatabaseURL string

	// MeiliURL and MeiliAPIKey configure the optional search index.
	// Empty MeiliURL disables indexing.
	MeiliURL    string
	MeiliAPIKey string
	MeiliIndex  string

	// CachePath is the SQLite scrape-cache file.
	CachePath string
	CacheTTL  time.Duration

	// TrolleyBaseURL is the scrape target.
	TrolleyBaseURL string

	// ScrapeRate is the request budget against the scrape target, in
	// requests per second.
	ScrapeRate     float64
	RequestTimeout time.Duration

	// MatchThreshold is the minimum fuzzy confidence for a match.
	MatchThreshold float64

	// ScanAllRetailers collects prices from every retailer instead of
	// stopping at the first priority hit.
	ScanAllRetailers bool

	// RefreshSchedule is the cron spec (with seconds) for re-checking
	// stale lookups; RefreshMaxAge marks a lookup stale.
	RefreshSchedule string
	RefreshMaxAge   time.Duration

	// APIRateLimit is the per-client request budget for the HTTP API,
	// in requests per second.
	APIRateLimit float64

	// AllowedOrigins is the CORS origin list for the HTTP API.
	AllowedOrigins []string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; explicit environment variables always win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		Addr:             getEnv("ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MeiliURL:         getEnv("MEILI_URL", ""),
		MeiliAPIKey:      getEnv("MEILI_API_KEY", ""),
		MeiliIndex:       getEnv("MEILI_INDEX", "grocery_listings"),
		CachePath:        getEnv("CACHE_PATH", "grocerscan_cache.db"),
		CacheTTL:         getEnvDuration("CACHE_TTL", 6*time.Hour),
		TrolleyBaseURL:   getEnv("TROLLEY_BASE_URL", "https://www.trolley.co.uk"),
		ScrapeRate:       getEnvFloat("SCRAPE_RATE", 0.5),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MatchThreshold:   getEnvFloat("MATCH_THRESHOLD", 0.7),
		ScanAllRetailers: getEnvBool("SCAN_ALL_RETAILERS", false),
		RefreshSchedule:  getEnv("REFRESH_SCHEDULE", "0 0 */6 * * *"),
		RefreshMaxAge:    getEnvDuration("REFRESH_MAX_AGE", 24*time.Hour),
		APIRateLimit:     getEnvFloat("API_RATE_LIMIT", 10),
		AllowedOrigins:   []string{getEnv("ALLOWED_ORIGINS", "*")},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using %v", v, key, fallback)
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using %v", v, key, fallback)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using %v", v, key, fallback)
		return fallback
	}
	return parsed
}
