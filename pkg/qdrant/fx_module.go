package qdrant

import (
	"context"
	"log"
	"sync"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the Qdrant client.
//
// The module:
//  1. Provides NewConfig so the client reads its settings from the
//     environment.
//  2. Provides the NewQdrantClient factory function to the dependency
//     injection container.
//  3. Provides NewEmbeddingsStore, which wraps the client into the
//     embedding source the engine consumes.
//  4. Invokes RegisterQdrantLifecycle to handle startup/shutdown of the
//     client.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewConfig,
		NewQdrantClient,
		NewEmbeddingsStore,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines dependencies needed to construct the Qdrant client.
type QdrantParams struct {
	fx.In
	Config *Config
}

// RegisterQdrantLifecycle handles startup/shutdown of the Qdrant client.
// It ensures proper resource cleanup and logging.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("[Qdrant] client initialized successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			once.Do(func() {
				client.Close()
				log.Println("[Qdrant] client connection closed")
			})
			return nil
		},
	})
}
