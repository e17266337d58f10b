package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/freshmarket/assistant/embedder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float32{0.1, 0.2, 0.3},
		})
	}))
	defer server.Close()

	e := NewEmbedder(
		embedder.WithLocation(server.URL),
		embedder.WithModel("test-model"),
	)

	vec, err := e.Embed(context.Background(), "olma bormi?")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
}

func TestEmbedBatchPreservesOrder(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float32{float32(n)},
		})
	}))
	defer server.Close()

	e := NewEmbedder(embedder.WithLocation(server.URL))

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	// one warm-up call plus one per input, in order
	assert.Equal(t, []float32{2}, vecs[0])
	assert.Equal(t, []float32{3}, vecs[1])
	assert.Equal(t, []float32{4}, vecs[2])
}

func TestFailedWarmUpPoisonsSubsequentCalls(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := NewEmbedder(embedder.WithLocation(server.URL))

	_, err := e.Embed(context.Background(), "first")
	require.Error(t, err)

	_, err = e.Embed(context.Background(), "second")
	require.Error(t, err)

	// the warm-up ran once; later calls fail without retrying the load
	assert.Equal(t, int32(1), calls.Load())
}

func TestCancelledWarmUpDoesNotPoisonLaterCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float32{0.1, 0.2, 0.3},
		})
	}))
	defer server.Close()

	e := NewEmbedder(embedder.WithLocation(server.URL))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Embed(cancelled, "first")
	require.Error(t, err)

	// the daemon is healthy; only the first caller gave up
	vec, err := e.Embed(context.Background(), "second")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
}

func TestDefaults(t *testing.T) {
	e := NewEmbedder().(*ollamaEmbedder)

	assert.Equal(t, defaultLocation, e.options.Location)
	assert.Equal(t, defaultModel, e.options.Model)
	assert.Equal(t, defaultTimeout, e.options.Timeout)
}
