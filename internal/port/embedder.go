package port

import "context"

// Embedder generates vector embeddings for text. It is an optional
// capability: a nil Embedder means the capability is unavailable, and
// call failures are treated identically by callers.
type Embedder interface {
	// EmbedQuery generates an embedding for a single query text.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for the given texts, one vector
	// per input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string
}
