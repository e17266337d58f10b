package assistant

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/freshmarket/assistant/generator"
	"github.com/freshmarket/assistant/retriever"
)

// Service runs one chat turn end to end: retrieve a product shortlist,
// assemble the grounded message sequence, and stream the completion.
type Service struct {
	retriever       retriever.Retriever
	generator       generator.Generator
	limit           int
	maxHistoryTurns int
}

// Chat answers one user turn. Fragments arrive on the returned channel as
// the backend produces them; the channel is closed when the reply is
// complete. A retrieval failure is reported as an error before any channel
// is handed out. A generation failure before the first fragment surfaces
// as a single fallback fragment, so the caller always has something to
// show the user. A failure mid-stream just closes the channel: the partial
// reply stands.
func (s *Service) Chat(ctx context.Context, message string, history []generator.Message) (<-chan string, error) {
	records, err := s.retriever.Retrieve(ctx, message, retriever.WithLimit(s.limit))
	if err != nil {
		return nil, fmt.Errorf("retrieve products: %w", err)
	}

	messages := Assemble(message, records, history, s.maxHistoryTurns)

	fragments := make(chan string)

	stream, err := s.generator.Stream(ctx, messages)
	if err != nil {
		slog.ErrorContext(ctx, "failed to start completion stream", "error", err)
		go func() {
			defer close(fragments)
			select {
			case fragments <- FallbackReply:
			case <-ctx.Done():
			}
		}()
		return fragments, nil
	}

	go s.relay(ctx, stream, fragments)

	return fragments, nil
}

func (s *Service) relay(ctx context.Context, stream generator.Stream, fragments chan<- string) {
	defer close(fragments)
	defer stream.Close()

	relayed := 0

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			if relayed > 0 {
				slog.WarnContext(ctx, "completion stream interrupted, partial reply stands", "error", err)
				return
			}

			// some backends defer the request until the first receive, so
			// a stream that dies here produced nothing the user can see
			slog.ErrorContext(ctx, "completion stream failed before producing output", "error", err)
			select {
			case fragments <- FallbackReply:
			case <-ctx.Done():
			}
			return
		}

		select {
		case fragments <- fragment:
			relayed++
		case <-ctx.Done():
			return
		}
	}
}

func NewService(r retriever.Retriever, g generator.Generator, opts ...Option) *Service {
	if r == nil {
		panic("retriever is required")
	}

	if g == nil {
		panic("generator is required")
	}

	options := NewOptions(opts...)

	return &Service{
		retriever:       r,
		generator:       g,
		limit:           options.Limit,
		maxHistoryTurns: options.MaxHistoryTurns,
	}
}
