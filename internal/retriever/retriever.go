// Package retriever serves similarity queries over a store loaded into
// memory. A Retriever is constructed once at startup and is safe for
// concurrent use; the underlying index never changes after Open.
package retriever

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
)

// Retriever embeds queries and ranks stored chunks by cosine similarity.
type Retriever struct {
	embedder embedding.Embedder
	index    *vector.Index
	store    *store.Store
	logger   *zap.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets a logger for per-query debug events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Retriever) { r.logger = l }
}

// Open loads the store at dir and indexes it for search. It fails when
// the store was built with a different embedding model than embedder,
// or with a different vector width: mixing models silently corrupts
// similarity scores, so the mismatch is refused up front.
func Open(dir string, embedder embedding.Embedder, opts ...Option) (*Retriever, error) {
	r := &Retriever{embedder: embedder, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	st, err := store.Load(dir)
	if err != nil {
		return nil, err
	}
	if st.Meta.Model != embedder.ModelName() {
		return nil, fmt.Errorf(
			"retriever: store %s was built with embedding model %q but the configured embedder is %q; re-run ingest",
			dir, st.Meta.Model, embedder.ModelName())
	}
	if dims := embedder.Dimensions(); dims > 0 && st.Dimensions() != dims {
		return nil, fmt.Errorf(
			"retriever: store %s has %d-dimensional vectors but the embedder produces %d",
			dir, st.Dimensions(), dims)
	}

	idx, err := vector.NewIndex(st.ChunkIDs(), st.Vectors)
	if err != nil {
		return nil, fmt.Errorf("retriever: index store %s: %w", dir, err)
	}
	r.store = st
	r.index = idx
	r.logger.Info("retriever store loaded",
		zap.String("dir", dir),
		zap.String("model", st.Meta.Model),
		zap.Int("chunks", len(st.Chunks)),
		zap.Int("dimensions", st.Dimensions()))
	return r, nil
}

// Search embeds query and returns the k most similar chunks, highest
// score first. Fewer than k contexts come back when the store is
// smaller than k.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]models.Context, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, models.WrapError(models.ErrUpstream, "embed query", err)
	}
	hits, err := r.index.Search(vec, k)
	if err != nil {
		return nil, models.WrapError(models.ErrInternal, "search index", err)
	}
	contexts := make([]models.Context, len(hits))
	for i, h := range hits {
		contexts[i] = models.Context{Chunk: r.store.Chunks[h.Index], Score: h.Score}
	}
	r.logger.Debug("retriever search",
		zap.Int("k", k),
		zap.Int("hits", len(hits)))
	return contexts, nil
}

// Status describes the store backing this retriever.
func (r *Retriever) Status() *models.StatusResponse {
	return &models.StatusResponse{
		Model:     r.store.Meta.Model,
		Chunks:    len(r.store.Chunks),
		Documents: r.store.Documents(),
		Dimension: r.store.Dimensions(),
		StoreDir:  r.store.Dir,
	}
}

// Close releases the embedder.
func (r *Retriever) Close() error {
	return r.embedder.Close()
}
