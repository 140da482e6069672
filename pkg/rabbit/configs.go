package rabbit

import (
	"os"
	"strconv"
)

type Config struct {
	Connection Connection
	Channel    Channel
}

type Connection struct {
	Host           string
	Port           uint
	User           string
	Password       string
	IsSSLEnabled   bool
	UseCert        bool
	CACertPath     string
	ClientCertPath string
	ClientKeyPath  string
	ServerName     string
}

type Channel struct {
	ExchangeName     string
	ExchangeType     string
	ContentType      string
	DelayToReconnect int
}

// NewConfig builds the RabbitMQ configuration from environment variables.
// Defaults target a local broker and the geometry events exchange.
func NewConfig() Config {
	port := uint(5672)
	if v := os.Getenv("RABBIT_PORT"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 16); err == nil {
			port = uint(parsed)
		}
	}

	return Config{
		Connection: Connection{
			Host:           getEnv("RABBIT_HOST", "localhost"),
			Port:           port,
			User:           getEnv("RABBIT_USER", "guest"),
			Password:       getEnv("RABBIT_PASSWORD", "guest"),
			IsSSLEnabled:   os.Getenv("RABBIT_SSL_ENABLED") == "true",
			UseCert:        os.Getenv("RABBIT_USE_CERT") == "true",
			CACertPath:     os.Getenv("RABBIT_CA_CERT_PATH"),
			ClientCertPath: os.Getenv("RABBIT_CLIENT_CERT_PATH"),
			ClientKeyPath:  os.Getenv("RABBIT_CLIENT_KEY_PATH"),
			ServerName:     os.Getenv("RABBIT_SERVER_NAME"),
		},
		Channel: Channel{
			ExchangeName:     getEnv("RABBIT_EXCHANGE_NAME", "geometry.events"),
			ExchangeType:     getEnv("RABBIT_EXCHANGE_TYPE", "topic"),
			ContentType:      getEnv("RABBIT_CONTENT_TYPE", "application/json"),
			DelayToReconnect: 1,
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
