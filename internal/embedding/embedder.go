// Package embedding produces vector embeddings for chunk and query text.
package embedding

import "context"

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch embeds texts preserving input order: vector i belongs
	// to texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	// ModelName identifies the embedding model. It is persisted with the
	// store and checked at load time so queries are never embedded with
	// a different model than the corpus was.
	ModelName() string
	Close() error
}
