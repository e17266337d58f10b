package retriever

import (
	"context"

	"github.com/freshmarket/assistant/index"
)

type Retriever interface {
	// Retrieve turns a raw user utterance into a ranked shortlist of
	// products. An index that was never built yields an empty shortlist,
	// not an error.
	Retrieve(ctx context.Context, query string, opts ...RetrieveOption) ([]index.Record, error)
}
