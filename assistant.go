package assistant

import (
	"context"

	"github.com/freshmarket/assistant/catalog"
	"github.com/freshmarket/assistant/embedder"
	"github.com/freshmarket/assistant/generator"
	"github.com/freshmarket/assistant/index"
	"github.com/freshmarket/assistant/indexer"
	"github.com/freshmarket/assistant/internal/service/assistant"
	"github.com/freshmarket/assistant/retriever"
	"github.com/freshmarket/assistant/retriever/vector"
)

const (
	Greeting      = assistant.Greeting
	FallbackReply = assistant.FallbackReply
)

// Assistant wires the storefront pipeline together: catalog sync into the
// vector index, retrieval over it, and grounded chat completion.
type Assistant struct {
	chat      *assistant.Service
	retriever retriever.Retriever
	builder   *indexer.Builder
	index     index.Index
}

// Chat answers one user turn as a stream of reply fragments.
func (a *Assistant) Chat(ctx context.Context, message string, history []generator.Message) (<-chan string, error) {
	return a.chat.Chat(ctx, message, history)
}

// Retrieve returns the ranked product shortlist for a raw query.
func (a *Assistant) Retrieve(ctx context.Context, query string, opts ...retriever.RetrieveOption) ([]index.Record, error) {
	return a.retriever.Retrieve(ctx, query, opts...)
}

// Reindex rebuilds the vector index from the product catalog.
func (a *Assistant) Reindex(ctx context.Context) (indexer.Report, error) {
	return a.builder.Sync(ctx)
}

// Count reports how many products the index currently holds.
func (a *Assistant) Count(ctx context.Context) (int, error) {
	return a.index.Count(ctx)
}

// List returns up to limit indexed products for inspection.
func (a *Assistant) List(ctx context.Context, limit int) ([]index.Record, error) {
	return a.index.List(ctx, limit)
}

func New(
	e embedder.Embedder,
	g generator.Generator,
	idx index.Index,
	source catalog.Source,
	opts ...assistant.Option,
) *Assistant {
	r := vector.NewRetriever(e, idx)

	return &Assistant{
		chat:      assistant.NewService(r, g, opts...),
		retriever: r,
		builder:   indexer.New(source, e, idx),
		index:     idx,
	}
}
