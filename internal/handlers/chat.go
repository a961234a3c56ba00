package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"mindmate-backend/internal/models"
)

type replier interface {
	Reply(ctx context.Context, message string) (string, error)
	Info() models.ProviderInfo
}

type ChatHandler struct {
	replies     replier
	streamDelay time.Duration
}

func NewChatHandler(replies replier, streamDelay time.Duration) *ChatHandler {
	return &ChatHandler{replies: replies, streamDelay: streamDelay}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("message string required"))
		return
	}

	wantStream := r.URL.Query().Get("stream") == "1" || req.Stream

	reply, err := h.replies.Reply(r.Context(), req.Message)
	if err != nil {
		log.Printf("[CHAT] Reply failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("LLM error"))
		return
	}

	if !wantStream {
		writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
		return
	}

	h.streamWords(w, r, reply)
}

// streamWords writes the reply one word at a time, flushing after each
// write and pausing streamDelay between writes.
func (h *ChatHandler) streamWords(w http.ResponseWriter, r *http.Request, reply string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	ctx := r.Context()
	words := strings.Fields(reply)

	for i, word := range words {
		if i > 0 && h.streamDelay > 0 {
			timer := time.NewTimer(h.streamDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return
		}

		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			log.Printf("[CHAT] Stream write failed after %d/%d words: %v", i, len(words), err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Provider reports which reply provider was resolved at startup.
func (h *ChatHandler) Provider(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.replies.Info())
}
