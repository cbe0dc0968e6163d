package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	// Domain is the public host name used in canonical post URIs.
	Domain      string
	DatabaseURL string
	JWTSecret   string

	FederationActor   string
	FederationInboxes []string
	FederationTimeout time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		Domain:      strings.TrimSpace(os.Getenv("DOMAIN")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		FederationInboxes: splitList(os.Getenv("FEDERATION_INBOXES")),
	}

	if cfg.Domain == "" {
		return nil, fmt.Errorf("DOMAIN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.FederationActor = getEnv("FEDERATION_ACTOR", fmt.Sprintf("https://%s/ap/actor", cfg.Domain))

	var err error
	cfg.FederationTimeout, err = parseDuration(getEnv("FEDERATION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEDERATION_TIMEOUT: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
