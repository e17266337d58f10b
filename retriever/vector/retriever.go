package vector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/freshmarket/assistant/embedder"
	"github.com/freshmarket/assistant/index"
	"github.com/freshmarket/assistant/retriever"
)

type vectorRetriever struct {
	embedder embedder.Embedder
	index    index.Index
}

func (r *vectorRetriever) Retrieve(ctx context.Context, query string, opts ...retriever.RetrieveOption) ([]index.Record, error) {
	options := retriever.NewRetrieveOptions(opts...)

	vecs, err := r.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	records, err := r.index.Search(ctx, vecs[0], options.Limit)
	if errors.Is(err, index.ErrAbsent) {
		slog.WarnContext(ctx, "vector index has not been built, retrieval degrades to empty", "query", query)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	// callers only need display metadata
	for i := range records {
		records[i].Embedding = nil
	}

	return records, nil
}

func NewRetriever(embedder embedder.Embedder, index index.Index) retriever.Retriever {
	if embedder == nil {
		panic("embedder is required")
	}

	if index == nil {
		panic("index is required")
	}

	return &vectorRetriever{
		embedder: embedder,
		index:    index,
	}
}
