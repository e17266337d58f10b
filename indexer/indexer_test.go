package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/freshmarket/assistant/catalog"
	"github.com/freshmarket/assistant/catalog/static"
	"github.com/freshmarket/assistant/index"
	"github.com/freshmarket/assistant/index/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder produces a deterministic vector per input text.
type hashEmbedder struct {
	fail bool
}

func (e *hashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.fail {
		return nil, errors.New("model unavailable")
	}

	vec := make([]float32, 4)
	for i, r := range text {
		vec[i%4] += float32(r)
	}

	return vec, nil
}

func (e *hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func fixtureSource() catalog.Source {
	return static.NewSource(
		[]catalog.Product{
			{Id: "a1", Name: "Olma", Description: "Shirin qizil olma", Price: "15000", Stock: 100, Unit: "kg", CategoryId: "c1"},
			{Id: "b1", Name: "Banan", Description: "Sariq banan", Price: "25000", Stock: 80, Unit: "kg", CategoryId: "c1"},
			{Id: "p1", Name: "Pomidor", Description: "Yangi pomidor", Price: "12000", Stock: 150, Unit: "kg", CategoryId: "missing"},
		},
		[]catalog.Category{
			{Id: "c1", Name: "Mevalar"},
		},
	)
}

func TestSyncIndexesAllProducts(t *testing.T) {
	idx := memory.NewIndex()
	builder := New(fixtureSource(), &hashEmbedder{}, idx)

	report, err := builder.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Indexed)
	assert.Zero(t, report.Skipped)

	count, err := idx.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSyncResolvesCategoriesWithFallback(t *testing.T) {
	idx := memory.NewIndex()
	builder := New(fixtureSource(), &hashEmbedder{}, idx)

	_, err := builder.Sync(context.Background())
	require.NoError(t, err)

	records, err := idx.List(context.Background(), 0)
	require.NoError(t, err)

	byId := map[string]index.Record{}
	for _, rec := range records {
		byId[rec.Id] = rec
	}

	assert.Equal(t, "Mevalar", byId["a1"].Category)
	assert.Equal(t, "Boshqa", byId["p1"].Category)
}

func TestSyncDerivesTextDeterministically(t *testing.T) {
	idx := memory.NewIndex()
	builder := New(fixtureSource(), &hashEmbedder{}, idx)

	_, err := builder.Sync(context.Background())
	require.NoError(t, err)

	first, err := idx.List(context.Background(), 0)
	require.NoError(t, err)

	_, err = builder.Sync(context.Background())
	require.NoError(t, err)

	second, err := idx.List(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].Embedding, second[i].Embedding)
	}

	assert.Equal(t, "Olma. Shirin qizil olma. Kategoriya: Mevalar. Narxi: 15000 so'm.", first[0].Text)
}

func TestSyncSkipsUnmappableProducts(t *testing.T) {
	source := static.NewSource(
		[]catalog.Product{
			{Id: "a1", Name: "Olma", Price: "15000", Stock: 100, Unit: "kg"},
			{Id: "bad", Name: "   ", Price: "0"},
		},
		nil,
	)

	idx := memory.NewIndex()
	builder := New(source, &hashEmbedder{}, idx)

	report, err := builder.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Skipped)
}

func TestSyncFailsWhenEmbeddingUnavailable(t *testing.T) {
	idx := memory.NewIndex()
	builder := New(fixtureSource(), &hashEmbedder{fail: true}, idx)

	_, err := builder.Sync(context.Background())
	require.Error(t, err)

	// a failed sync must not leave a half-built index behind
	_, err = idx.Count(context.Background())
	assert.ErrorIs(t, err, index.ErrAbsent)
}
