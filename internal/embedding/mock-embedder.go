package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/hyperjump/kotae/pkg/utils"
)

// MockEmbedder is a deterministic embedder for tests and offline runs.
// Every word contributes a fixed pseudo-random direction, so texts that
// share vocabulary get correlated vectors while unrelated texts score
// near zero. Output is L2-normalized, making dot products cosine
// similarities.
type MockEmbedder struct {
	// Name is reported as the model identifier. Tests override it to
	// exercise the store model guard.
	Name       string
	dimensions int
}

// NewMockEmbedder returns a deterministic embedder of the given width.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{
		Name:       fmt.Sprintf("mock-%d", dimensions),
		dimensions: dimensions,
	}
}

// Embed returns the normalized bag-of-words vector for text. Words are
// lowercased and stripped of surrounding punctuation first.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	emb := make([]float32, e.dimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, `.,!?;:"'()[]`)
		if word == "" {
			continue
		}
		h := float64(HashString(word))
		for i := range emb {
			emb[i] += float32(math.Sin(h * float64(i+1)))
		}
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding width.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the mock model identifier.
func (e *MockEmbedder) ModelName() string {
	return e.Name
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}
