package models

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	WSMoodLogged  = "mood_logged"
	WSMoodCleared = "mood_cleared"
)

type MoodLoggedEvent struct {
	Entry     MoodEntry       `json:"entry"`
	Detection StressDetection `json:"detection"`
}
