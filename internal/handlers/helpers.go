package handlers

import (
	"encoding/json"
	"net/http"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// requireUser returns the caller's user id, writing a 401 when there is none.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResp("userId required"))
		return "", false
	}
	return userID, true
}
