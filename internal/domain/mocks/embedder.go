package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder. It returns a small
// deterministic vector derived from the text length so distinct inputs get
// distinct embeddings without any network dependency.
type Embedder struct {
	Err   error
	Calls []string
}

// NewEmbedder creates a new mock Embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Embed generates a deterministic vector for the given text.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates deterministic vectors for multiple texts.
func (m *Embedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		m.Calls = append(m.Calls, text)
		vectors[i] = []float32{float32(len(text)), 1, 0}
	}
	return vectors, nil
}
