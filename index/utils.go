package index

import (
	"math"
	"sort"
)

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores candidates against the query vector and returns the top k,
// descending. The caller's slice is not modified.
func Rank(candidates []Record, vector []float32, k int) []Record {
	if k < 1 {
		return nil
	}

	ranked := make([]Record, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].Score = float32(CosineSimilarity(vector, ranked[i].Embedding))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	return ranked
}
