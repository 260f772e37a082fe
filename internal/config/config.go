package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config carries every tunable the process needs. Values are read once at
// startup and passed into the layers that use them; nothing else reads the
// environment.
type Config struct {
	DSN         string
	Port        string
	JWTSecret   string
	TokenTTL    time.Duration
	RatePerHour decimal.Decimal // currency units per hour of remaining planned work
	CORSOrigins []string
}

// Load builds the configuration from environment variables with development
// defaults. The hourly rate is a policy parameter, never derived.
func Load() (*Config, error) {
	rate, err := decimal.NewFromString(getEnv("RATE_PER_HOUR", "1500"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_PER_HOUR: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}

	return &Config{
		DSN:         buildDSN(),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   secret,
		TokenTTL:    ttl,
		RatePerHour: rate,
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
	}, nil
}

func buildDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "postgres")
	sslMode := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + password + "@" + host + ":" + port + "/" + name + "?sslmode=" + sslMode
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
