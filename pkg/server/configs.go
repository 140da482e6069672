package server

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the query API server.
const (
	DefaultServerAddress = ":8080"
	DefaultReadTimeout   = 10 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
)

// maxBodyBytes bounds request bodies. The largest legitimate payload is a
// packet override with a few super nodes, well under this.
const maxBodyBytes = 1 << 20

// Config defines the configuration structure for the query API server.
type Config struct {
	// Address is the network address the API server listens on.
	Address string `yaml:"address" envconfig:"SERVER_ADDRESS"`

	// ReadTimeout bounds how long reading a request may take.
	ReadTimeout time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT_SECONDS"`

	// WriteTimeout bounds how long writing a response may take. Exact-mode
	// computations on large documents dominate this budget.
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT_SECONDS"`
}

// NewConfig builds the server configuration from environment variables.
func NewConfig() Config {
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = DefaultServerAddress
	}

	return Config{
		Address:      address,
		ReadTimeout:  getenvSeconds("SERVER_READ_TIMEOUT_SECONDS", DefaultReadTimeout),
		WriteTimeout: getenvSeconds("SERVER_WRITE_TIMEOUT_SECONDS", DefaultWriteTimeout),
	}
}

func getenvSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
