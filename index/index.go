package index

import (
	"context"
	"errors"
)

// ErrAbsent is returned when an index was never built. Callers must treat
// this distinctly from an index that was built with zero records.
var ErrAbsent = errors.New("index has not been built")

type Index interface {
	// Rebuild atomically replaces the whole index with the given records.
	// Concurrent readers see either the old set or the new set, never a mix.
	Rebuild(ctx context.Context, records []Record) error
	// Search returns up to k records ordered by descending similarity to
	// the query vector. An empty index yields an empty result, not an error.
	Search(ctx context.Context, vector []float32, k int) ([]Record, error)
	// List returns up to limit records in storage order.
	List(ctx context.Context, limit int) ([]Record, error)
	// Count reports how many records the index currently holds.
	Count(ctx context.Context) (int, error)
}
