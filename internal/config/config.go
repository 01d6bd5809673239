// Package config centralizes environment-driven configuration for the
// daemon. A .env file in the working directory is honored when present;
// real environment variables win.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/notacoder13/nc-lottery-backend/internal/fetch"
	"github.com/notacoder13/nc-lottery-backend/internal/refresh"
	"github.com/notacoder13/nc-lottery-backend/internal/scrape"
)

// Config carries everything the daemon needs from the environment.
type Config struct {
	Env        string // "local", "dev", "prod"
	ListenAddr string

	// RedisAddr selects Redis snapshot persistence; when empty the
	// snapshot persists to files under DataDir instead.
	RedisAddr string
	DataDir   string

	RefreshInterval time.Duration
	FetchTimeout    time.Duration

	CatalogURL      string
	LedgerURL       string
	PowerballURL    string
	MegaMillionsURL string

	// Notify selects the announcement channel: "off", "dryrun", or
	// "twitter".
	Notify string
}

// Load reads configuration from the environment with defaults.
func Load() Config {
	_ = godotenv.Load() // .env may not exist

	return Config{
		Env:        getEnv("ENV", "local"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		DataDir:   getEnv("DATA_DIR", "~/.local/share/nc-lottery"),

		RefreshInterval: getDuration("REFRESH_INTERVAL", refresh.DefaultInterval),
		FetchTimeout:    getDuration("FETCH_TIMEOUT", fetch.DefaultTimeout),

		CatalogURL:      getEnv("CATALOG_URL", scrape.CatalogURL),
		LedgerURL:       getEnv("LEDGER_URL", scrape.LedgerURL),
		PowerballURL:    getEnv("POWERBALL_URL", scrape.PowerballURL),
		MegaMillionsURL: getEnv("MEGAMILLIONS_URL", scrape.MegaMillionsURL),

		Notify: getEnv("NOTIFY", "off"),
	}
}

// getEnv returns the environment value or the default.
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getDuration parses a duration like "30m" or falls back to def.
func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// Bare numbers are read as minutes.
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return def
}
