package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/freshmarket/assistant/embedder"
)

const (
	defaultLocation = "http://localhost:11434"
	defaultModel    = "nomic-embed-text"
	defaultTimeout  = 60 * time.Second
)

// ollamaEmbedder embeds text with a locally served model. The model is
// pulled into memory by the Ollama daemon on first use, so the first call
// triggers a one-time warm-up; concurrent first callers share it.
type ollamaEmbedder struct {
	options embedder.Options
	client  *http.Client
	mtx     sync.Mutex
	warmed  bool
	loadErr error
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *ollamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return e.embed(ctx, text)
}

func (e *ollamaEmbedder) ensureLoaded(ctx context.Context) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.warmed {
		return nil
	}

	if e.loadErr != nil {
		return fmt.Errorf("embedding model unavailable: %w", e.loadErr)
	}

	err := e.warmUp(ctx)
	if err == nil {
		e.warmed = true
		return nil
	}

	// a caller that gave up says nothing about the daemon, so the next
	// caller retries the warm-up
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	slog.ErrorContext(ctx, "failed to load embedding model", "model", e.options.Model, "error", err)

	e.loadErr = err

	return fmt.Errorf("embedding model unavailable: %w", err)
}

func (e *ollamaEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))

	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		vecs[i] = vec
	}

	return vecs, nil
}

func (e *ollamaEmbedder) warmUp(ctx context.Context) error {
	if _, err := e.embed(ctx, "ping"); err != nil {
		return err
	}

	slog.InfoContext(ctx, "embedding model loaded", "model", e.options.Model)

	return nil
}

func (e *ollamaEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{
		Model:  e.options.Model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.options.Location+"/api/embeddings",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	rsp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call ollama: %w", err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", rsp.StatusCode)
	}

	var res embedResponse
	if err := json.NewDecoder(rsp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(res.Embedding) == 0 {
		return nil, fmt.Errorf("no embedding from ollama")
	}

	return res.Embedding, nil
}

func NewEmbedder(opts ...embedder.Option) embedder.Embedder {
	options := embedder.NewOptions(opts...)

	if len(options.Location) == 0 {
		options.Location = defaultLocation
	}

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	if options.Timeout == 0 {
		options.Timeout = defaultTimeout
	}

	e := &ollamaEmbedder{
		options: options,
		client: &http.Client{
			Timeout: options.Timeout,
		},
	}

	return e
}
