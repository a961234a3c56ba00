package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"mindmate-backend/internal/models"
)

type fitReader interface {
	Steps(ctx context.Context, accessToken string, days int) (*models.FitResponse, error)
	HeartRate(ctx context.Context, accessToken string, days int) (*models.FitResponse, error)
	StepsToday(ctx context.Context, accessToken string) (*models.FitResponse, error)
	HeartPoints(ctx context.Context, accessToken string, days int) (*models.FitResponse, error)
	TargetSteps() *models.FitResponse
	Overview(ctx context.Context, accessToken string, days int) (*models.FitResponse, error)
}

type GoogleFitHandler struct {
	fit fitReader
}

func NewGoogleFitHandler(fit fitReader) *GoogleFitHandler {
	return &GoogleFitHandler{fit: fit}
}

func (h *GoogleFitHandler) Steps(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "STEPS", func(ctx context.Context, token string) (*models.FitResponse, error) {
		return h.fit.Steps(ctx, token, parseDays(r, 1))
	})
}

func (h *GoogleFitHandler) HeartRate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "HEART_RATE", func(ctx context.Context, token string) (*models.FitResponse, error) {
		return h.fit.HeartRate(ctx, token, parseDays(r, 1))
	})
}

func (h *GoogleFitHandler) StepsToday(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "STEPS_TODAY", h.fit.StepsToday)
}

func (h *GoogleFitHandler) HeartPoints(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "HEART_POINTS", func(ctx context.Context, token string) (*models.FitResponse, error) {
		return h.fit.HeartPoints(ctx, token, parseDays(r, 1))
	})
}

func (h *GoogleFitHandler) TargetSteps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.fit.TargetSteps())
}

func (h *GoogleFitHandler) Data(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "DATA", func(ctx context.Context, token string) (*models.FitResponse, error) {
		return h.fit.Overview(ctx, token, parseDays(r, 7))
	})
}

func (h *GoogleFitHandler) serve(w http.ResponseWriter, r *http.Request, tag string, fetch func(ctx context.Context, token string) (*models.FitResponse, error)) {
	token := r.URL.Query().Get("accessToken")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("accessToken required"))
		return
	}

	resp, err := fetch(r.Context(), token)
	if err != nil {
		log.Printf("[%s] API error: %v", tag, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to fetch Google Fit data"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// maxDays bounds the Fit aggregation window. Google Fit keeps a few months of
// history and days*24h must stay inside time.Duration.
const maxDays = 90

// parseDays reads a positive "days" query value, falling back to def and
// capping at maxDays.
func parseDays(r *http.Request, def int) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		return def
	}
	return min(days, maxDays)
}
