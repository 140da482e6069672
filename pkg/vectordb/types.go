package vectordb

// EmbeddingSet is the raw material of a manifold analysis: the embedding
// vectors stored for one document, in insertion order. It is supplied by
// the external ingestion pipeline via a Source implementation; the engine
// consumes it per request and never persists the vectors.
type EmbeddingSet struct {
	// DocumentID is the opaque identifier of the owning document.
	DocumentID string `json:"documentId"`

	// Vectors holds the fixed-dimension embeddings, ordered as stored.
	Vectors [][]float64 `json:"vectors"`
}

// Len returns the number of vectors in the set.
func (e EmbeddingSet) Len() int { return len(e.Vectors) }

// Dimension returns the dimension of the first vector, or 0 for an empty set.
func (e EmbeddingSet) Dimension() int {
	if len(e.Vectors) == 0 {
		return 0
	}
	return len(e.Vectors[0])
}
