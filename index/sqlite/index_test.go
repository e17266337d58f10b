package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/freshmarket/assistant/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) index.Index {
	t.Helper()

	idx, err := NewIndex(index.WithLocation(filepath.Join(t.TempDir(), "products.db")))
	require.NoError(t, err)

	return idx
}

func fixtureRecords() []index.Record {
	return []index.Record{
		{Id: "a1", Name: "Olma", Description: "Shirin qizil olma", Price: "15000", Category: "Mevalar", Stock: 100, Unit: "kg", Embedding: []float32{1, 0, 0}},
		{Id: "b1", Name: "Banan", Description: "Sariq banan", Price: "25000", Category: "Mevalar", Stock: 80, Unit: "kg", Embedding: []float32{0, 1, 0}},
		{Id: "p1", Name: "Pomidor", Description: "Yangi pomidor", Price: "12000", Category: "Sabzavotlar", Stock: 150, Unit: "kg", Embedding: []float32{0, 0, 1}},
	}
}

func TestAbsentUntilRebuilt(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	assert.ErrorIs(t, err, index.ErrAbsent)

	_, err = idx.Count(context.Background())
	assert.ErrorIs(t, err, index.ErrAbsent)
}

func TestRebuildThenSearch(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(context.Background(), fixtureRecords()))

	got, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Olma", got[0].Name)
	assert.Equal(t, "15000", got[0].Price)
	assert.Equal(t, 100, got[0].Stock)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestSearchKBeyondSize(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(context.Background(), fixtureRecords()))

	got, err := idx.Search(context.Background(), []float32{1, 0, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRebuildReplacesNotMerges(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(context.Background(), fixtureRecords()))

	replacement := []index.Record{
		{Id: "u1", Name: "Uzum (Qora)", Description: "Qora uzum", Price: "30000", Category: "Mevalar", Stock: 40, Unit: "kg", Embedding: []float32{1, 0, 0}},
	}
	require.NoError(t, idx.Rebuild(context.Background(), replacement))

	got, err := idx.Search(context.Background(), []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Uzum (Qora)", got[0].Name)
}

func TestRebuildEmptySetIsNotAbsent(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Rebuild(context.Background(), nil))

	got, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, got)

	count, err := idx.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")

	idx, err := NewIndex(index.WithLocation(path))
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild(context.Background(), fixtureRecords()))

	reopened, err := NewIndex(index.WithLocation(path))
	require.NoError(t, err)

	count, err := reopened.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	listed, err := reopened.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
