package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/token"
)

// DefaultBatchSize is how many chunk texts are embedded per backend call.
const DefaultBatchSize = 32

// DefaultExtensions are the corpus file types scanned when none are
// configured.
var DefaultExtensions = []string{".txt", ".md", ".pdf", ".docx"}

// Builder runs the offline pipeline. It owns text extraction, token
// chunking, batched embedding, and the final store write.
type Builder struct {
	embedder        embedding.Embedder
	chunker         *Chunker
	extractor       *extract.Extractor
	extensions      []string
	excludePrefixes []string
	chunkSize       int
	chunkOverlap    int
	batchSize       int
	logger          *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a logger for per-file and per-batch debug events.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// WithChunking overrides the chunk window size and overlap in tokens.
func WithChunking(size, overlap int) BuilderOption {
	return func(b *Builder) { b.chunkSize, b.chunkOverlap = size, overlap }
}

// WithBatchSize overrides how many texts are embedded per backend call.
func WithBatchSize(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithExtensions restricts the scan to the given extensions
// (leading dot optional, case-insensitive).
func WithExtensions(exts []string) BuilderOption {
	return func(b *Builder) {
		if len(exts) > 0 {
			b.extensions = exts
		}
	}
}

// WithExcludePrefixes skips files whose base name starts with any of
// the given prefixes, for keeping meta-documents out of the corpus.
func WithExcludePrefixes(prefixes []string) BuilderOption {
	return func(b *Builder) { b.excludePrefixes = prefixes }
}

// NewBuilder creates a builder that embeds with embedder and measures
// chunks with codec tokens.
func NewBuilder(embedder embedding.Embedder, codec token.Codec, opts ...BuilderOption) *Builder {
	b := &Builder{
		embedder:     embedder,
		extractor:    extract.NewExtractor(),
		extensions:   DefaultExtensions,
		batchSize:    DefaultBatchSize,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.chunker = NewChunker(codec, b.chunkSize, b.chunkOverlap)
	return b
}

// Stats summarizes a completed build.
type Stats struct {
	Documents  int
	Chunks     int
	Dimensions int
	Model      string
}

// Build scans dataDir, chunks and embeds every document, and writes the
// store to storeDir, replacing any previous store. A scan yielding zero
// chunks is an error.
func (b *Builder) Build(ctx context.Context, dataDir, storeDir string) (*Stats, error) {
	docs, err := b.ScanDocuments(dataDir)
	if err != nil {
		return nil, err
	}

	var chunks []*models.Chunk
	for _, doc := range docs {
		cs := b.chunker.Chunk(doc)
		b.logger.Debug("ingest chunked document",
			zap.String("doc_id", doc.ID),
			zap.String("source", doc.Source),
			zap.Int("chunks", len(cs)))
		chunks = append(chunks, cs...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("ingest: no chunks produced from %q; nothing to index", dataDir)
	}

	vectors, err := b.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := store.Write(storeDir, b.embedder.ModelName(), chunks, vectors); err != nil {
		return nil, err
	}

	stats := &Stats{
		Documents:  len(docs),
		Chunks:     len(chunks),
		Dimensions: len(vectors[0]),
		Model:      b.embedder.ModelName(),
	}
	b.logger.Info("ingest store written",
		zap.String("store_dir", storeDir),
		zap.Int("documents", stats.Documents),
		zap.Int("chunks", stats.Chunks),
		zap.Int("dimensions", stats.Dimensions),
		zap.String("model", stats.Model))
	return stats, nil
}

// embedChunks embeds chunk texts in order, batchSize texts per call.
func (b *Builder) embedChunks(ctx context.Context, chunks []*models.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := b.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("ingest: embed chunks %d-%d: %w", start, end-1, err)
		}
		vectors = append(vectors, batch...)
		b.logger.Debug("ingest embedded batch", zap.Int("done", end), zap.Int("total", len(texts)))
	}
	return vectors, nil
}

// ScanDocuments walks dataDir and extracts the text of every supported
// document. Files with excluded name prefixes, blank extracted text, or
// non-matching extensions are skipped; extraction failures are logged
// and skipped rather than aborting the scan. Walk order is lexical, so
// document order is reproducible.
func (b *Builder) ScanDocuments(dataDir string) ([]*models.Document, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("ingest: stat data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ingest: not a directory: %s", dataDir)
	}

	var docs []*models.Document
	err = filepath.WalkDir(dataDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		name := filepath.Base(path)
		if b.excludedName(name) {
			b.logger.Debug("ingest skipping excluded file", zap.String("path", path))
			return nil
		}
		if !extensionAllowed(filepath.Ext(path), b.extensions) {
			return nil
		}
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		text, extractErr := b.extractor.Extract(path)
		if extractErr != nil {
			b.logger.Warn("ingest skipping unreadable file",
				zap.String("path", path), zap.Error(extractErr))
			return nil
		}
		if strings.TrimSpace(text) == "" {
			b.logger.Debug("ingest skipping empty file", zap.String("path", path))
			return nil
		}
		docs = append(docs, &models.Document{
			ID:     uuid.New().String(),
			Source: path,
			Text:   text,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: scan %s: %w", dataDir, err)
	}
	b.logger.Debug("ingest scan complete", zap.Int("documents", len(docs)))
	return docs, nil
}

func (b *Builder) excludedName(name string) bool {
	for _, prefix := range b.excludePrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func extensionAllowed(ext string, allowed []string) bool {
	extNorm := strings.ToLower(strings.TrimPrefix(ext, "."))
	if extNorm == "" {
		return false
	}
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}
