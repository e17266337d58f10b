package embedder

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input, in matching order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
