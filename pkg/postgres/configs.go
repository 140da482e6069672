package postgres

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string
	SSLMode  string
}

type ConnectionDetails struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewConfig builds the Postgres configuration from environment variables.
func NewConfig() Config {
	maxOpen := 50
	if v := os.Getenv("POSTGRES_MAX_OPEN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxOpen = parsed
		}
	}

	return Config{
		Connection: Connection{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			DbName:   getEnv("POSTGRES_DB", "geometry"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		ConnectionDetails: ConnectionDetails{
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    25,
			ConnMaxLifetime: time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
