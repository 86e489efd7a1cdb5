package models

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultK is the number of contexts retrieved when a request does
	// not specify one.
	DefaultK = 4
	// MaxK caps the number of contexts a single request may ask for.
	MaxK = 20
)

// AnswerRequest is a question posed against the ingested corpus.
type AnswerRequest struct {
	Query    string `json:"query"`
	K        int    `json:"k,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Validate checks the request and normalizes it: blank queries are
// rejected, K falls back to DefaultK when unset and is capped at MaxK.
func (r *AnswerRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return Errorf(ErrValidation, "query cannot be empty")
	}
	if r.K <= 0 {
		r.K = DefaultK
	}
	if r.K > MaxK {
		r.K = MaxK
	}
	return nil
}

// Context is a retrieved chunk paired with its similarity score.
type Context struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}

// Title returns a short human-readable label for the context's origin,
// the base name of the source file.
func (c *Context) Title() string {
	return filepath.Base(c.Chunk.Source)
}

// Citation returns the public projection of the context. The chunk text
// is omitted on purpose.
func (c *Context) Citation() Citation {
	return Citation{
		Source: c.Chunk.Source,
		Title:  c.Title(),
		Score:  c.Score,
	}
}

// Citation identifies a context that contributed to an answer.
type Citation struct {
	Source string  `json:"source"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// Meta describes how an answer was produced.
type Meta struct {
	K           int    `json:"k"`
	Provider    string `json:"provider"`
	GeneratedAt string `json:"generated_at"`
}

// AnswerResponse is the envelope returned for every answered query.
// Its shape is identical whether the answer was generated or refused.
type AnswerResponse struct {
	Answer   string     `json:"answer"`
	Contexts []Citation `json:"contexts"`
	Meta     Meta       `json:"meta"`
}

// SearchResult is a single retrieval hit returned by the search
// endpoint. Text is filled only when the caller asked for it.
type SearchResult struct {
	ChunkID string  `json:"chunk_id"`
	Source  string  `json:"source"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Text    string  `json:"text,omitempty"`
}

// SearchResponse is the response for a retrieval-only search request.
type SearchResponse struct {
	Query     string         `json:"query"`
	Results   []SearchResult `json:"results"`
	Total     int            `json:"total"`
	QueryTime int64          `json:"query_time_ms"`
}

// StatusResponse describes the store currently serving queries.
// Providers is filled by the server, which knows the generator
// registry; it stays empty when the store is read directly.
type StatusResponse struct {
	Model     string   `json:"model"`
	Chunks    int      `json:"chunks"`
	Documents int      `json:"documents"`
	Dimension int      `json:"dimension"`
	StoreDir  string   `json:"store_dir"`
	Providers []string `json:"providers,omitempty"`
}
