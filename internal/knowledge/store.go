package knowledge

import "context"

// PassageRecord pairs a corpus passage with its embedding vector for storage.
type PassageRecord struct {
	PassageID string    `json:"passage_id"`
	Text      string    `json:"text"`
	Offset    int64     `json:"offset"`
	Embedding []float32 `json:"embedding"`
}

// Match is a retrieved passage with its similarity score.
type Match struct {
	PassageID string  `json:"passage_id"`
	Text      string  `json:"text"`
	Score     float32 `json:"score"`
}

// VectorStore defines the interface for passage storage and similarity search.
// The store is read-only after a completed build; Reset is the only
// destructive operation and is invoked exclusively by the Builder.
type VectorStore interface {
	// Insert adds passage records to the store
	Insert(ctx context.Context, records []PassageRecord) error

	// Search performs top-K similarity search over passage embeddings.
	// An empty result is valid, not an error.
	Search(ctx context.Context, queryVector []float32, topK int) ([]Match, error)

	// Reset drops the persisted index and recreates it empty
	Reset(ctx context.Context) error

	// Count returns the number of stored passages (0 when the index is absent)
	Count(ctx context.Context) (int64, error)

	// Close releases resources and closes connections
	Close() error
}
