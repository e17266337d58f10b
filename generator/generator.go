package generator

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	// Stream requests incremental output. The returned stream yields the
	// reply fragment by fragment; concatenating the fragments in order
	// gives the full reply.
	Stream(ctx context.Context, messages []Message) (Stream, error)
}

// Stream is a finite, non-restartable sequence of reply fragments.
type Stream interface {
	// Recv returns the next fragment. It returns io.EOF when the backend
	// signals completion.
	Recv() (string, error)
	// Close releases the backend-side stream. Safe to call after Recv
	// returned an error.
	Close() error
}
