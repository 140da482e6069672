package kafka

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by NewClient when the corresponding field is zero.
const (
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchSize    = 100
	DefaultBatchTimeout = time.Second
)

type Config struct {
	Brokers []string

	// MaxAttempts is how many times a write is retried before failing.
	MaxAttempts  int
	WriteTimeout time.Duration

	// Async batches writes in the background. The event bus already
	// decouples publishing from the request path, so this defaults off.
	Async        bool
	BatchSize    int
	BatchTimeout time.Duration

	// CompressionCodec selects gzip, snappy, lz4 or zstd. Empty means
	// no compression.
	CompressionCodec string

	TLS  TLSConfig
	SASL SASLConfig
}

type TLSConfig struct {
	Enabled            bool
	InsecureSkipVerify bool
	CACertPath         string
	ClientCertPath     string
	ClientKeyPath      string
}

type SASLConfig struct {
	Enabled   bool
	Mechanism string
	Username  string
	Password  string
}

// NewConfig builds the Kafka configuration from environment variables.
func NewConfig() Config {
	maxAttempts := DefaultMaxAttempts
	if v := os.Getenv("KAFKA_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxAttempts = parsed
		}
	}

	return Config{
		Brokers:          splitBrokers(getEnv("KAFKA_BROKERS", "localhost:9092")),
		MaxAttempts:      maxAttempts,
		WriteTimeout:     DefaultWriteTimeout,
		Async:            os.Getenv("KAFKA_ASYNC") == "true",
		BatchSize:        DefaultBatchSize,
		BatchTimeout:     DefaultBatchTimeout,
		CompressionCodec: os.Getenv("KAFKA_COMPRESSION_CODEC"),
		TLS: TLSConfig{
			Enabled:            os.Getenv("KAFKA_TLS_ENABLED") == "true",
			InsecureSkipVerify: os.Getenv("KAFKA_TLS_INSECURE_SKIP_VERIFY") == "true",
			CACertPath:         os.Getenv("KAFKA_CA_CERT_PATH"),
			ClientCertPath:     os.Getenv("KAFKA_CLIENT_CERT_PATH"),
			ClientKeyPath:      os.Getenv("KAFKA_CLIENT_KEY_PATH"),
		},
		SASL: SASLConfig{
			Enabled:   os.Getenv("KAFKA_SASL_ENABLED") == "true",
			Mechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			Username:  os.Getenv("KAFKA_SASL_USERNAME"),
			Password:  os.Getenv("KAFKA_SASL_PASSWORD"),
		},
	}
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
