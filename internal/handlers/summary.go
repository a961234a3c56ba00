package handlers

import (
	"context"
	"log"
	"net/http"

	"mindmate-backend/internal/models"
	"mindmate-backend/internal/repository"
)

const summaryWindow = 12

type summarizer interface {
	Summary(ctx context.Context, entries []models.MoodEntry) (string, error)
}

type SummaryHandler struct {
	repo       repository.MoodRepository
	summarizer summarizer
}

func NewSummaryHandler(repo repository.MoodRepository, summarizer summarizer) *SummaryHandler {
	return &SummaryHandler{repo: repo, summarizer: summarizer}
}

func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.repo.Read(r.Context(), userID)
	if err != nil {
		log.Printf("[SUMMARY] Read failed for %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("LLM error"))
		return
	}

	summary, err := h.summarizer.Summary(r.Context(), repository.Last(entries, summaryWindow))
	if err != nil {
		log.Printf("[SUMMARY] Failed for %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("LLM error"))
		return
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{Summary: summary})
}
