package vector

import (
	"math"
	"testing"
)

func TestIndex_SearchOrder(t *testing.T) {
	ids := []string{"a", "b", "c"}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.7, 0.7, 0},
	}
	idx, err := NewIndex(ids, vectors)
	if err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search([]float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].ID != "a" {
		t.Errorf("top hit = %s, want a", hits[0].ID)
	}
	if math.Abs(hits[0].Score-1.0) > 1e-6 {
		t.Errorf("top score = %v, want 1", hits[0].Score)
	}
	if hits[1].ID != "c" {
		t.Errorf("second hit = %s, want c", hits[1].ID)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not in descending order at %d", i)
		}
	}
}

func TestIndex_SearchClampsK(t *testing.T) {
	idx, err := NewIndex([]string{"a", "b"}, [][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search([]float32{1, 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 hits, got %d", len(hits))
	}
}

func TestIndex_SearchUnnormalizedVectors(t *testing.T) {
	// Same direction at different magnitudes must score identically.
	idx, err := NewIndex([]string{"short", "long"}, [][]float32{{1, 1}, {10, 10}})
	if err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search([]float32{2, 2}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hits[0].Score-hits[1].Score) > 1e-6 {
		t.Errorf("scores differ: %v vs %v", hits[0].Score, hits[1].Score)
	}
	if math.Abs(hits[0].Score-1.0) > 1e-6 {
		t.Errorf("score = %v, want 1", hits[0].Score)
	}
}

func TestIndex_TiesKeepMatrixOrder(t *testing.T) {
	ids := []string{"first", "second", "third"}
	vectors := [][]float32{{0, 1}, {0, 1}, {0, 1}}
	idx, err := NewIndex(ids, vectors)
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 5; run++ {
		hits, err := idx.Search([]float32{0, 1}, 3)
		if err != nil {
			t.Fatal(err)
		}
		for i, want := range ids {
			if hits[i].ID != want {
				t.Fatalf("run %d: hit %d = %s, want %s", run, i, hits[i].ID, want)
			}
			if hits[i].Index != i {
				t.Fatalf("run %d: hit %d Index = %d, want %d", run, i, hits[i].Index, i)
			}
		}
	}
}

func TestIndex_Empty(t *testing.T) {
	idx, err := NewIndex(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search([]float32{1, 0}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if hits != nil {
		t.Errorf("expected nil hits, got %v", hits)
	}
	if idx.Size() != 0 || idx.Dimensions() != 0 {
		t.Errorf("Size=%d Dimensions=%d", idx.Size(), idx.Dimensions())
	}
}

func TestIndex_DimensionMismatch(t *testing.T) {
	if _, err := NewIndex([]string{"a", "b"}, [][]float32{{1, 0}, {1, 0, 0}}); err == nil {
		t.Error("expected error for ragged matrix")
	}
	idx, err := NewIndex([]string{"a"}, [][]float32{{1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Search([]float32{1, 0, 0}, 1); err == nil {
		t.Error("expected error for query dimension mismatch")
	}
}

func TestIndex_NegativeScoresPossible(t *testing.T) {
	idx, err := NewIndex([]string{"opposite"}, [][]float32{{-1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hits[0].Score-(-1.0)) > 1e-6 {
		t.Errorf("score = %v, want -1", hits[0].Score)
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal = %v", got)
	}
	if got := Cosine([]float32{3, 0}, []float32{7, 0}); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("parallel = %v", got)
	}
	if got := Cosine([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("zero norm = %v", got)
	}
	if got := Cosine([]float32{1}, []float32{1, 2}); got != 0 {
		t.Errorf("length mismatch = %v", got)
	}
}

func TestL2Norm(t *testing.T) {
	if got := L2Norm([]float32{3, 4}); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("L2Norm = %v, want 5", got)
	}
	if got := L2Norm(nil); got != 0 {
		t.Errorf("L2Norm(nil) = %v", got)
	}
}
