package qdrant

import (
	"os"
	"strconv"
)

// Config holds the connection and collection settings for the Qdrant
// vector store.
type Config struct {
	Host       string
	Port       int
	ApiKey     string
	UseTLS     bool
	Collection string

	// ScrollLimit caps how many points a single embedding fetch reads.
	// Documents beyond this size are truncated, which the analysis
	// sampler tolerates.
	ScrollLimit uint32
}

// NewConfig builds the Qdrant configuration from environment variables.
func NewConfig() *Config {
	port := 6334
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			port = parsed
		}
	}

	scrollLimit := uint32(4096)
	if v := os.Getenv("QDRANT_SCROLL_LIMIT"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil && parsed > 0 {
			scrollLimit = uint32(parsed)
		}
	}

	collection := os.Getenv("QDRANT_COLLECTION")
	if collection == "" {
		collection = "document_embeddings"
	}

	host := os.Getenv("QDRANT_HOST")
	if host == "" {
		host = "localhost"
	}

	return &Config{
		Host:        host,
		Port:        port,
		ApiKey:      os.Getenv("QDRANT_API_KEY"),
		UseTLS:      os.Getenv("QDRANT_USE_TLS") == "true",
		Collection:  collection,
		ScrollLimit: scrollLimit,
	}
}
