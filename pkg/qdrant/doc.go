// Package qdrant provides a dependency-injected client for the Qdrant
// vector database and the embedding source the analysis engine reads
// document clouds from.
//
// The ingestion pipeline (outside this service) writes one point per
// embedding and stamps each point's payload with a document_id field. The
// EmbeddingsStore scrolls those points back by document and converts the
// vectors into the database-agnostic vectordb.EmbeddingSet the engine
// operates on.
//
// Core Features:
//
//   - Managed Qdrant client lifecycle with Fx integration
//   - Automatic health checks on client initialization
//   - Collection existence check and bootstrap on startup
//   - Payload-filtered scroll for per-document embedding retrieval
//
// Basic Usage:
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//		Config: qdrant.NewConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := qdrant.NewEmbeddingsStore(client)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	set, err := store.FetchEmbeddings(ctx, "doc-42")
package qdrant
