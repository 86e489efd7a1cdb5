// Package vector provides brute-force cosine similarity search over an
// embedding matrix.
package vector

import (
	"fmt"
	"sort"
)

// Hit is a single nearest-neighbor result.
type Hit struct {
	ID    string  // chunk id owning the vector
	Index int     // ordinal position in the matrix
	Score float64 // cosine similarity in [-1, 1]
}

// Index is a brute-force cosine nearest-neighbor index. It is immutable
// after construction, so concurrent searches need no locking.
type Index struct {
	dimensions int
	ids        []string
	vectors    [][]float32
	norms      []float64
}

// NewIndex builds an index over the full matrix. The id and vector
// slices are retained, not copied; the caller hands over ownership.
// Vectors must all share one dimension. An empty matrix yields a usable
// index whose searches return nothing.
func NewIndex(ids []string, vectors [][]float32) (*Index, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}
	idx := &Index{ids: ids, vectors: vectors}
	if len(vectors) == 0 {
		return idx, nil
	}
	idx.dimensions = len(vectors[0])
	if idx.dimensions == 0 {
		return nil, fmt.Errorf("vectors must have positive dimension")
	}
	idx.norms = make([]float64, len(vectors))
	for i, vec := range vectors {
		if len(vec) != idx.dimensions {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(vec), idx.dimensions)
		}
		idx.norms[i] = L2Norm(vec)
	}
	return idx, nil
}

// Search returns up to k hits ordered by descending cosine similarity.
// Ties keep matrix order, so results are deterministic across runs.
// Vectors are not assumed normalized; norms are divided out.
func (x *Index) Search(query []float32, k int) ([]Hit, error) {
	if x.Size() == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != x.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), x.dimensions)
	}
	qn := L2Norm(query)
	hits := make([]Hit, len(x.ids))
	for i, vec := range x.vectors {
		var dot float64
		for j := range vec {
			dot += float64(query[j]) * float64(vec[j])
		}
		score := 0.0
		if qn > 0 && x.norms[i] > 0 {
			score = dot / (qn * x.norms[i])
		}
		hits[i] = Hit{ID: x.ids[i], Index: i, Score: score}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k:k], nil
}

// Size returns the number of indexed vectors.
func (x *Index) Size() int {
	return len(x.ids)
}

// Dimensions returns the vector width, 0 for an empty index.
func (x *Index) Dimensions() int {
	return x.dimensions
}
