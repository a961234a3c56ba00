package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
	"mindmate-backend/internal/repository"
	"mindmate-backend/internal/services"
)

const recentEntries = 10

type moodPublisher interface {
	Publish(ctx context.Context, userID string, msg models.WSMessage)
}

type MoodHandler struct {
	repo      repository.MoodRepository
	publisher moodPublisher
	// allowBodyUserID lets POST bodies carry userId when tokens are not in use.
	allowBodyUserID bool
	now             func() time.Time
}

func NewMoodHandler(repo repository.MoodRepository, publisher moodPublisher, allowBodyUserID bool) *MoodHandler {
	return &MoodHandler{
		repo:            repo,
		publisher:       publisher,
		allowBodyUserID: allowBodyUserID,
		now:             time.Now,
	}
}

func (h *MoodHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req models.LogMoodRequest
	decodeErr := json.NewDecoder(r.Body).Decode(&req)

	userID := middleware.GetUserID(r.Context())
	if userID == "" && h.allowBodyUserID {
		userID = strings.TrimSpace(req.UserID)
	}
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResp("userId required"))
		return
	}

	if decodeErr != nil || req.Mood == nil || req.Stress == nil {
		writeJSON(w, http.StatusBadRequest, errorResp("mood and stress (numbers) required"))
		return
	}
	if !inScale(*req.Mood) || !inScale(*req.Stress) {
		writeJSON(w, http.StatusBadRequest, errorResp("mood and stress must be between 0 and 5"))
		return
	}

	ctx := r.Context()
	entries, err := h.repo.Read(ctx, userID)
	if err != nil {
		log.Printf("[MOOD] Read failed for %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to save mood entry"))
		return
	}

	entry := models.NewMoodEntry(*req.Mood, *req.Stress, h.now())
	entries = append(entries, entry)

	if err := h.repo.Write(ctx, userID, entries); err != nil {
		log.Printf("[MOOD] Write failed for %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to save mood entry"))
		return
	}

	detection := services.DetectStress(entries)
	if h.publisher != nil {
		h.publisher.Publish(ctx, userID, models.WSMessage{
			Type:    models.WSMoodLogged,
			Payload: models.MoodLoggedEvent{Entry: entry, Detection: detection},
		})
	}

	writeJSON(w, http.StatusOK, models.LogMoodResponse{
		Detection: detection,
		Entries:   repository.Last(entries, recentEntries),
	})
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entries, err := h.repo.Read(r.Context(), userID)
	if err != nil {
		log.Printf("[MOOD] Read failed for %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to load mood entries"))
		return
	}

	writeJSON(w, http.StatusOK, models.MoodListResponse{Entries: repository.Last(entries, recentEntries)})
}

func (h *MoodHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" && h.allowBodyUserID {
		var body struct {
			UserID string `json:"userId"`
		}
		if json.NewDecoder(r.Body).Decode(&body) == nil {
			userID = strings.TrimSpace(body.UserID)
		}
	}
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResp("userId required"))
		return
	}

	if err := h.repo.Write(r.Context(), userID, []models.MoodEntry{}); err != nil {
		log.Printf("[MOOD] Clear failed for %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to clear data"))
		return
	}
	log.Printf("✓ All mood data cleared for user %s", userID)

	if h.publisher != nil {
		h.publisher.Publish(r.Context(), userID, models.WSMessage{
			Type:    models.WSMoodCleared,
			Payload: map[string]string{"userId": userID},
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "All data cleared successfully",
	})
}

func inScale(v float64) bool {
	return v >= 0 && v <= 5
}
