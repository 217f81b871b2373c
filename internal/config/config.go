package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBDSN      string // empty disables assessment history persistence
	DataDir    string
	APIKeyHash string // bcrypt hash of the API key; empty disables the gate

	OSVURL          string
	EconURL         string
	FredAPIKey      string
	ProviderTimeout time.Duration
	StressCacheTTL  time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:      os.Getenv("SERVER_PORT"),
		DBDSN:           os.Getenv("DB_DSN"),
		DataDir:         os.Getenv("DATA_DIR"),
		APIKeyHash:      os.Getenv("API_KEY_HASH"),
		OSVURL:          os.Getenv("OSV_URL"),
		EconURL:         os.Getenv("ECON_URL"),
		FredAPIKey:      os.Getenv("FRED_API_KEY"),
		ProviderTimeout: envDuration("PROVIDER_TIMEOUT", 5*time.Second),
		StressCacheTTL:  envDuration("STRESS_CACHE_TTL", time.Hour),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.OSVURL == "" {
		cfg.OSVURL = "https://api.osv.dev/v1/query"
	}
	if cfg.EconURL == "" {
		cfg.EconURL = "https://api.stlouisfed.org/fred/series/observations"
	}
	if cfg.DBDSN == "" {
		log.Println("DB_DSN is not set, assessment history is disabled")
	}

	return cfg
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, raw, def)
		return def
	}
	return d
}
