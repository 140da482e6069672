package qdrant

import (
	"context"
	"fmt"
	"log"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/cipheratlas/geometry-engine/pkg/vectordb"
)

// payloadDocumentID is the payload field the ingestion pipeline stamps on
// every point belonging to a document.
const payloadDocumentID = "document_id"

// EmbeddingsStore reads the embedding cloud of a document out of the
// configured collection. It implements vectordb.Source.
type EmbeddingsStore struct {
	client *Client
}

// NewEmbeddingsStore initializes and returns a new embeddings store.
//
// It verifies that the target collection exists, creating it if necessary,
// so the service starts cleanly against an empty Qdrant instance.
func NewEmbeddingsStore(client *Client) (*EmbeddingsStore, error) {
	store := &EmbeddingsStore{client: client}

	if err := store.EnsureCollection(context.Background(), client.cfg.Collection); err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to ensure collection: %w", err)
	}

	log.Printf("[Qdrant] EmbeddingsStore ready (collection=%s)", client.cfg.Collection)
	return store, nil
}

// EnsureCollection checks if a collection exists, and creates it if missing.
func (s *EmbeddingsStore) EnsureCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	exists, err := s.client.api.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	log.Printf("[Qdrant] Creating new collection: %s", name)
	err = s.client.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     1536,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}
	return nil
}

// FetchEmbeddings scrolls all points whose payload carries the given
// document id and returns their vectors in storage order. An unknown
// document yields an empty set.
func (s *EmbeddingsStore) FetchEmbeddings(ctx context.Context, documentID string) (vectordb.EmbeddingSet, error) {
	limit := s.client.cfg.ScrollLimit

	points, err := s.client.api.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.client.cfg.Collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(payloadDocumentID, documentID),
			},
		},
		Limit:       &limit,
		WithVectors: qdrant.NewWithVectors(true),
	})
	if err != nil {
		return vectordb.EmbeddingSet{}, fmt.Errorf("[Qdrant] scroll failed for document '%s': %w", documentID, err)
	}

	vectors := make([][]float64, 0, len(points))
	for _, point := range points {
		out := point.GetVectors().GetVector()
		if out == nil {
			continue
		}
		data := out.GetData()
		vector := make([]float64, len(data))
		for i, v := range data {
			vector[i] = float64(v)
		}
		vectors = append(vectors, vector)
	}

	log.Printf("[Qdrant] Fetched %d embeddings for document '%s'", len(vectors), documentID)
	return vectordb.EmbeddingSet{DocumentID: documentID, Vectors: vectors}, nil
}
