package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 0, 0},
			b:    []float32{1, 0, 0},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "dimension mismatch",
			a:    []float32{1, 0},
			b:    []float32{1, 0, 0},
			want: 0.0,
		},
		{
			name: "zero vector",
			a:    []float32{0, 0},
			b:    []float32{1, 0},
			want: 0.0,
		},
		{
			name: "empty vectors",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRank(t *testing.T) {
	candidates := []Record{
		{Id: "1", Name: "Olma", Embedding: []float32{1, 0, 0}},
		{Id: "2", Name: "Banan", Embedding: []float32{0, 1, 0}},
		{Id: "3", Name: "Pomidor", Embedding: []float32{0.9, 0.1, 0}},
	}

	query := []float32{1, 0, 0}

	t.Run("orders by descending score", func(t *testing.T) {
		ranked := Rank(candidates, query, 3)
		assert.Len(t, ranked, 3)
		assert.Equal(t, "1", ranked[0].Id)
		assert.Equal(t, "3", ranked[1].Id)
		assert.Equal(t, "2", ranked[2].Id)
		assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
		assert.GreaterOrEqual(t, ranked[1].Score, ranked[2].Score)
	})

	t.Run("k bounds the result", func(t *testing.T) {
		ranked := Rank(candidates, query, 2)
		assert.Len(t, ranked, 2)
	})

	t.Run("k larger than candidates returns all", func(t *testing.T) {
		ranked := Rank(candidates, query, 10)
		assert.Len(t, ranked, 3)
	})

	t.Run("k below one returns nothing", func(t *testing.T) {
		assert.Nil(t, Rank(candidates, query, 0))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		Rank(candidates, query, 3)
		assert.Zero(t, candidates[0].Score)
	})
}
