package embedding

import "context"

// MockEmbedder produces deterministic vectors for tests.
type MockEmbedder struct {
	dimension int
	fail      bool
}

// NewMockEmbedder creates a mock embedder with the given dimension.
func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

// NewFailingEmbedder creates a mock embedder whose calls always fail,
// for exercising the keyword fallback path.
func NewFailingEmbedder() *MockEmbedder {
	return &MockEmbedder{dimension: 8, fail: true}
}

func (e *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.fail {
		return nil, context.DeadlineExceeded
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dimension)
		for j, r := range text {
			if j >= e.dimension {
				break
			}
			vec[j] = float32(r) / 1000.0
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
