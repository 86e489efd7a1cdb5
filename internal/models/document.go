// Package models defines core data structures for documents, chunks, and answers.
package models

import "fmt"

// Document is a source file discovered during ingestion, with its
// extracted plain text.
type Document struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Chunk is a contiguous token window cut from a document. Field order
// matches the persisted JSONL layout.
type Chunk struct {
	DocID  string `json:"doc_id"`
	Source string `json:"source"`
	ID     string `json:"chunk_id"`
	Text   string `json:"text"`
}

// ChunkID returns the canonical id for the i-th chunk of a document.
func ChunkID(docID string, i int) string {
	return fmt.Sprintf("%s::%d", docID, i)
}
