package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Client wraps the official Qdrant Go client.
//
// It manages connection lifecycle and configuration; the embedding store
// built on top of it provides the read operations the engine needs.
type Client struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

// NewQdrantClient constructs and initializes a new Qdrant client.
//
// It is registered as an Fx provider and automatically injected wherever
// *Client is a dependency.
func NewQdrantClient(p QdrantParams) (*Client, error) {
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", p.Config.Host, p.Config.Port)

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   p.Config.Host,
		Port:   p.Config.Port,
		APIKey: p.Config.ApiKey,
		UseTLS: p.Config.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	c := &Client{
		api:     client,
		cfg:     p.Config,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return c, nil
}

// healthCheck verifies connectivity against the Qdrant instance.
func (c *Client) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}
	log.Printf("[Qdrant] Health check passed (%s:%d, version %s)", c.cfg.Host, c.cfg.Port, resp.GetVersion())
	return nil
}

// Close gracefully shuts down the Qdrant client.
func (c *Client) Close() {
	if !c.started {
		return
	}
	log.Println("[Qdrant] Closing client connection")
	_ = c.api.Close()
	c.started = false
}
