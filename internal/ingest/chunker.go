// Package ingest builds the embedding store from a corpus directory:
// scan, extract, chunk, embed, persist.
package ingest

import (
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/token"
)

const (
	// DefaultChunkSize is the window size in tokens.
	DefaultChunkSize = 400
	// DefaultChunkOverlap is how many tokens consecutive windows share.
	DefaultChunkOverlap = 60
)

// Chunker splits document text into overlapping token windows. Window
// boundaries are measured in codec tokens, not characters, so chunk
// sizes line up with model token budgets.
type Chunker struct {
	codec   token.Codec
	size    int
	overlap int
}

// NewChunker creates a chunker cutting size-token windows that overlap
// by overlap tokens. An overlap >= size is clamped to size-1 so the
// window start always advances.
func NewChunker(codec token.Codec, size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &Chunker{codec: codec, size: size, overlap: overlap}
}

// Chunk cuts the document's text into sequentially numbered chunks.
// A document shorter than the window yields exactly one chunk; empty
// text yields none.
func (c *Chunker) Chunk(doc *models.Document) []*models.Chunk {
	toks := c.codec.Encode(doc.Text)
	if len(toks) == 0 {
		return nil
	}
	var chunks []*models.Chunk
	step := c.size - c.overlap
	for i := 0; i < len(toks); i += step {
		end := i + c.size
		if end > len(toks) {
			end = len(toks)
		}
		chunks = append(chunks, &models.Chunk{
			DocID:  doc.ID,
			Source: doc.Source,
			ID:     models.ChunkID(doc.ID, len(chunks)),
			Text:   c.codec.Decode(toks[i:end]),
		})
		if end >= len(toks) {
			break
		}
	}
	return chunks
}
