// Package config reads service settings from the environment. Outside
// production a .env file in the working directory is loaded first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tacocloud/internal/logger"
	"tacocloud/internal/storage"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	CatalogFile string
	CORSOrigins []string

	SessionSecret string
	SessionTTL    time.Duration

	Log logger.Config
	R2  storage.R2Config
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load reads the environment, loading .env first unless APP_ENV is
// production. SESSION_SECRET is required.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv without touching .env files.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Env:           get("APP_ENV", "development"),
		Port:          get("PORT", "8080"),
		DatabaseURL:   get("DATABASE_URL", ""),
		CatalogFile:   get("CATALOG_FILE", ""),
		CORSOrigins:   defaultCORSOrigins,
		SessionSecret: get("SESSION_SECRET", ""),
		R2: storage.R2Config{
			Endpoint:  get("R2_ENDPOINT", ""),
			AccessKey: get("R2_ACCESS_KEY", ""),
			SecretKey: get("R2_SECRET_KEY", ""),
			Bucket:    get("R2_BUCKET_NAME", ""),
		},
	}

	cfg.Log = logger.Config{
		Level:       get("LOG_LEVEL", "info"),
		Format:      get("LOG_FORMAT", "json"),
		Environment: cfg.Env,
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("missing env var: SESSION_SECRET")
	}

	ttl, err := time.ParseDuration(get("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}
	cfg.SessionTTL = ttl

	if raw := get("CORS_ORIGINS", ""); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) Production() bool {
	return c.Env == "production"
}
