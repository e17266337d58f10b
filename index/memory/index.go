package memory

import (
	"context"
	"sync/atomic"

	"github.com/freshmarket/assistant/index"
)

type snapshot struct {
	records []index.Record
}

type memoryIndex struct {
	options index.Options
	current atomic.Pointer[snapshot]
}

func (m *memoryIndex) Rebuild(ctx context.Context, records []index.Record) error {
	next := &snapshot{
		records: make([]index.Record, len(records)),
	}

	for i, rec := range records {
		cpy := make([]float32, len(rec.Embedding))
		copy(cpy, rec.Embedding)
		rec.Embedding = cpy
		next.records[i] = rec
	}

	m.current.Store(next)

	return nil
}

func (m *memoryIndex) Search(ctx context.Context, vector []float32, k int) ([]index.Record, error) {
	snap := m.current.Load()
	if snap == nil {
		return nil, index.ErrAbsent
	}

	if k < 1 {
		return nil, nil
	}

	return index.Rank(snap.records, vector, k), nil
}

func (m *memoryIndex) List(ctx context.Context, limit int) ([]index.Record, error) {
	snap := m.current.Load()
	if snap == nil {
		return nil, index.ErrAbsent
	}

	if limit < 1 || limit > len(snap.records) {
		limit = len(snap.records)
	}

	cpy := make([]index.Record, limit)
	copy(cpy, snap.records[:limit])

	return cpy, nil
}

func (m *memoryIndex) Count(ctx context.Context) (int, error) {
	snap := m.current.Load()
	if snap == nil {
		return 0, index.ErrAbsent
	}

	return len(snap.records), nil
}

func NewIndex(opts ...index.Option) index.Index {
	options := index.NewOptions(opts...)

	m := &memoryIndex{
		options: options,
	}

	return m
}
