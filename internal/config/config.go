// README: Config loader with env defaults for HTTP, DB, Redis, rates, routing and logging.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type RoutingConfig struct {
	// APIKey empty disables trip planning.
	APIKey         string
	RequestsPerSec float64
	CacheTTL       time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN empty disables quote persistence.
		DSN string
	}
	Redis struct {
		// Addr empty disables the route cache.
		Addr string
	}
	RatesFile     string
	HomeZonesFile string
	Routing       RoutingConfig
	Location      *time.Location
	Log           struct {
		Level  string
		Format string
	}
}

// Load reads the environment, after applying a .env file from the working
// directory when one exists.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CARSHARE_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("CARSHARE_DB_DSN")
	cfg.Redis.Addr = os.Getenv("CARSHARE_REDIS_ADDR")
	cfg.RatesFile = os.Getenv("CARSHARE_RATES_FILE")
	cfg.HomeZonesFile = os.Getenv("CARSHARE_HOMEZONES_FILE")
	cfg.Routing.APIKey = os.Getenv("CARSHARE_MAPS_API_KEY")
	cfg.Routing.RequestsPerSec = envOrDefaultFloat("CARSHARE_MAPS_RPS", 5)
	cfg.Routing.CacheTTL = envOrDefaultDuration("CARSHARE_ROUTE_CACHE_TTL", 6*time.Hour)
	cfg.Log.Level = envOrDefault("CARSHARE_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("CARSHARE_LOG_FORMAT", "text")

	loc, err := time.LoadLocation(envOrDefault("CARSHARE_TIMEZONE", "America/Vancouver"))
	if err != nil {
		return Config{}, fmt.Errorf("CARSHARE_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.Routing.RequestsPerSec <= 0 {
		return Config{}, fmt.Errorf("CARSHARE_MAPS_RPS must be positive")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
