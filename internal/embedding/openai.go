package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the embedding model used when none is configured.
const DefaultOpenAIModel = "text-embedding-3-small"

// openAIDimensions maps known embedding models to their output widths.
var openAIDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedder produces embeddings through the OpenAI embeddings API,
// or any compatible endpoint when a base URL override is given (Azure
// deployments pass their resource endpoint suffixed with /openai/v1).
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	cache      *Cache
}

// OpenAIOption configures an OpenAIEmbedder.
type OpenAIOption func(*OpenAIEmbedder)

// WithDimensions overrides the embedding width for models not in the
// built-in table.
func WithDimensions(n int) OpenAIOption {
	return func(e *OpenAIEmbedder) { e.dimensions = n }
}

// WithCacheSize sets the LRU capacity for single-text embeds.
func WithCacheSize(n int) OpenAIOption {
	return func(e *OpenAIEmbedder) { e.cache = NewCache(n) }
}

// NewOpenAIEmbedder returns an embedder backed by the OpenAI API.
// baseURL may be empty for the public endpoint.
func NewOpenAIEmbedder(apiKey, baseURL, model string, opts ...OpenAIOption) *OpenAIEmbedder {
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	e := &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dimensions == 0 {
		if d, ok := openAIDimensions[model]; ok {
			e.dimensions = d
		} else {
			e.dimensions = 1536
		}
	}
	if e.cache == nil {
		e.cache = NewCache(1024)
	}
	return e
}

// Embed returns the embedding for one text, consulting the cache first.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}
	embs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	e.cache.Set(text, embs[0])
	return embs[0], nil
}

// EmbedBatch embeds texts in a single API call. Vectors are reassembled
// by the response index field so output order matches input order.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(rsp.Data) != len(texts) {
		return nil, fmt.Errorf("create embeddings: got %d vectors for %d texts", len(rsp.Data), len(texts))
	}
	out := make([][]float32, len(texts))
	for _, d := range rsp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("create embeddings: index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	for i, v := range out {
		if len(v) == 0 {
			return nil, fmt.Errorf("create embeddings: empty vector for text %d", i)
		}
	}
	return out, nil
}

// Dimensions returns the embedding width.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the configured model identifier.
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// Close is a no-op; the client holds no resources.
func (e *OpenAIEmbedder) Close() error {
	return nil
}
