package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/freshmarket/assistant"
	"github.com/freshmarket/assistant/generator"
	"github.com/gorilla/mux"
)

// routeFailureReply is the body of every error response on the chat route.
// Clients render the reply field directly, so failures stay in the same
// shape as a successful turn.
const routeFailureReply = "Tizimda xatolik yuz berdi."

type chatRequest struct {
	Message string              `json:"message"`
	History []generator.Message `json:"history"`
}

type apiHandler struct {
	assistant *assistant.Assistant
}

func (h *apiHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReply(w, http.StatusBadRequest, routeFailureReply)
		return
	}

	if len(strings.TrimSpace(req.Message)) == 0 {
		writeReply(w, http.StatusBadRequest, "Xabar matni talab qilinadi.")
		return
	}

	fragments, err := h.assistant.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		slog.ErrorContext(r.Context(), "chat turn failed", "error", err)
		writeReply(w, http.StatusInternalServerError, routeFailureReply)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)

	for fragment := range fragments {
		if _, err := w.Write([]byte(fragment)); err != nil {
			slog.WarnContext(r.Context(), "client went away mid reply", "error", err)
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

func (h *apiHandler) greeting(w http.ResponseWriter, r *http.Request) {
	writeReply(w, http.StatusOK, assistant.Greeting)
}

func (h *apiHandler) reindex(w http.ResponseWriter, r *http.Request) {
	report, err := h.assistant.Reindex(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "reindex failed", "error", err)
		writeReply(w, http.StatusInternalServerError, routeFailureReply)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	count, err := h.assistant.Count(r.Context())

	w.Header().Set("Content-Type", "application/json")

	status := map[string]any{"status": "ok", "indexed": count}
	if err != nil {
		status = map[string]any{"status": "degraded", "error": err.Error()}
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(status)
}

func writeReply(w http.ResponseWriter, code int, reply string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

// NewRouter mounts the assistant API.
func NewRouter(a *assistant.Assistant) *mux.Router {
	h := &apiHandler{assistant: a}

	router := mux.NewRouter()
	router.HandleFunc("/api/chat", h.chat).Methods(http.MethodPost)
	router.HandleFunc("/api/chat/greeting", h.greeting).Methods(http.MethodGet)
	router.HandleFunc("/admin/reindex", h.reindex).Methods(http.MethodPost)
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	return router
}
