package vectordb

import "context"

// Source is the database-agnostic contract for fetching the embeddings of
// a document. It decouples the analysis pipeline from the concrete vector
// store, so the engine works against Qdrant in production and against an
// in-memory fake in tests without changing application code.
//
// Example usage:
//
//	func NewService(src vectordb.Source) *Service {
//	    return &Service{source: src}
//	}
type Source interface {
	// FetchEmbeddings returns all embeddings stored for the given document,
	// in insertion order. An unknown document yields an empty set, not an
	// error; transport failures are returned as errors.
	FetchEmbeddings(ctx context.Context, documentID string) (EmbeddingSet, error)
}
