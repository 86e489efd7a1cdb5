// Package store persists and loads the embedding store: the ordered
// chunk list, the vector matrix, and build metadata, kept as three
// co-located artifacts. The pairing between chunks and vectors is
// positional, so the loader cross-checks the chunk ids recorded in both
// artifacts.
package store

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hyperjump/kotae/internal/models"
)

// Artifact names inside a store directory.
const (
	VectorsFile = "vectors.bin"
	ChunksFile  = "chunks.jsonl"
	MetaFile    = "meta.json"
)

// maxChunkLine bounds a single chunks.jsonl line when loading.
const maxChunkLine = 1 << 20

// Meta describes a persisted store.
type Meta struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// Store is the loaded pairing of chunks and their embedding matrix.
// Vector i belongs to chunk i.
type Store struct {
	Dir     string
	Meta    Meta
	Chunks  []*models.Chunk
	Vectors [][]float32
}

// Dimensions returns the vector width, 0 for an empty store.
func (s *Store) Dimensions() int {
	if len(s.Vectors) == 0 {
		return 0
	}
	return len(s.Vectors[0])
}

// Documents returns the number of distinct source documents.
func (s *Store) Documents() int {
	seen := make(map[string]struct{})
	for _, c := range s.Chunks {
		seen[c.DocID] = struct{}{}
	}
	return len(seen)
}

// ChunkIDs returns the ordered chunk id list.
func (s *Store) ChunkIDs() []string {
	ids := make([]string, len(s.Chunks))
	for i, c := range s.Chunks {
		ids[i] = c.ID
	}
	return ids
}

// Write persists chunks, vectors, and meta into dir. All artifacts are
// staged in a temporary sibling directory and renamed into place, so an
// interrupted build never leaves a half-written store behind. Any prior
// store at dir is replaced.
func Write(dir string, model string, chunks []*models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("store: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("store: resolve dir: %w", err)
	}
	parent := filepath.Dir(absDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("store: create parent dir: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, ".store-")
	if err != nil {
		return fmt.Errorf("store: create staging dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := writeVectors(filepath.Join(tmp, VectorsFile), chunks, vectors); err != nil {
		return err
	}
	if err := writeChunks(filepath.Join(tmp, ChunksFile), chunks); err != nil {
		return err
	}
	meta := Meta{Model: model, Count: len(chunks)}
	if err := writeMeta(filepath.Join(tmp, MetaFile), meta); err != nil {
		return err
	}

	if err := os.RemoveAll(absDir); err != nil {
		return fmt.Errorf("store: remove previous store: %w", err)
	}
	if err := os.Rename(tmp, absDir); err != nil {
		return fmt.Errorf("store: move store into place: %w", err)
	}
	return nil
}

// writeVectors writes the matrix file: dimension (u32), count (u32),
// then per record the chunk id (u32 length + bytes) and the vector
// (dimension little-endian float32 values).
func writeVectors(path string, chunks []*models.Chunk, vectors [][]float32) error {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", VectorsFile, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, uint32(dim)); err != nil {
		return fmt.Errorf("store: write dimension: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return fmt.Errorf("store: write count: %w", err)
	}
	buf := make([]byte, 4)
	for i, vec := range vectors {
		if len(vec) != dim {
			return fmt.Errorf("store: vector %d has dimension %d, expected %d", i, len(vec), dim)
		}
		id := []byte(chunks[i].ID)
		if err := binary.Write(w, binary.LittleEndian, uint32(len(id))); err != nil {
			return fmt.Errorf("store: write id length: %w", err)
		}
		if _, err := w.Write(id); err != nil {
			return fmt.Errorf("store: write id: %w", err)
		}
		for _, v := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("store: write vector: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("store: flush %s: %w", VectorsFile, err)
	}
	return nil
}

// writeChunks writes one JSON object per line, in matrix order.
func writeChunks(path string, chunks []*models.Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", ChunksFile, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, c := range chunks {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("store: encode chunk %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("store: flush %s: %w", ChunksFile, err)
	}
	return nil
}

func writeMeta(path string, meta Meta) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", MetaFile, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("store: encode meta: %w", err)
	}
	return nil
}

// Load reads a store from dir and validates its pairing invariants:
// meta count, chunk count, and vector count must agree, and the chunk id
// recorded with each vector must match the chunk at the same ordinal.
func Load(dir string) (*Store, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("store: resolve dir: %w", err)
	}
	meta, err := loadMeta(filepath.Join(absDir, MetaFile))
	if err != nil {
		return nil, err
	}
	chunks, err := loadChunks(filepath.Join(absDir, ChunksFile))
	if err != nil {
		return nil, err
	}
	ids, vectors, err := loadVectors(filepath.Join(absDir, VectorsFile))
	if err != nil {
		return nil, err
	}

	if len(chunks) != meta.Count {
		return nil, fmt.Errorf("store: %s says %d chunks but %s has %d", MetaFile, meta.Count, ChunksFile, len(chunks))
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("store: %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i, id := range ids {
		if chunks[i].ID != id {
			return nil, fmt.Errorf("store: ordinal %d pairs chunk %q with vector %q", i, chunks[i].ID, id)
		}
	}
	return &Store{Dir: absDir, Meta: meta, Chunks: chunks, Vectors: vectors}, nil
}

func loadMeta(path string) (Meta, error) {
	var meta Meta
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("store: read %s: %w", MetaFile, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("store: parse %s: %w", MetaFile, err)
	}
	if meta.Count < 0 {
		return meta, fmt.Errorf("store: negative count in %s", MetaFile)
	}
	return meta, nil
}

func loadChunks(path string) ([]*models.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", ChunksFile, err)
	}
	defer f.Close()

	var chunks []*models.Chunk
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxChunkLine)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var c models.Chunk
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("store: parse %s line %d: %w", ChunksFile, line, err)
		}
		chunks = append(chunks, &c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("store: scan %s: %w", ChunksFile, err)
	}
	return chunks, nil
}

func loadVectors(path string) ([]string, [][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("store: open %s: %w", VectorsFile, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var dim, n uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, nil, fmt.Errorf("store: read dimension: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, nil, fmt.Errorf("store: read count: %w", err)
	}

	ids := make([]string, 0, n)
	vectors := make([][]float32, 0, n)
	vecBuf := make([]byte, int(dim)*4)
	for i := uint32(0); i < n; i++ {
		var idLen uint32
		if err := binary.Read(r, binary.LittleEndian, &idLen); err != nil {
			return nil, nil, fmt.Errorf("store: read id length at record %d: %w", i, err)
		}
		if idLen > maxChunkLine {
			return nil, nil, fmt.Errorf("store: unreasonable id length %d at record %d", idLen, i)
		}
		idBytes := make([]byte, idLen)
		if _, err := io.ReadFull(r, idBytes); err != nil {
			return nil, nil, fmt.Errorf("store: read id at record %d: %w", i, err)
		}
		if _, err := io.ReadFull(r, vecBuf); err != nil {
			return nil, nil, fmt.Errorf("store: read vector at record %d: %w", i, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(vecBuf[j*4 : j*4+4]))
		}
		ids = append(ids, string(idBytes))
		vectors = append(vectors, vec)
	}
	return ids, vectors, nil
}
