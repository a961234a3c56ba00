package models

import "time"

// TimestampLayout matches the ISO-8601 millisecond form used by the web client.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type MoodEntry struct {
	Mood      float64 `json:"mood"`
	Stress    float64 `json:"stress"`
	Timestamp string  `json:"timestamp"`
}

// NewMoodEntry stamps an entry with the current UTC time.
func NewMoodEntry(mood, stress float64, now time.Time) MoodEntry {
	return MoodEntry{
		Mood:      mood,
		Stress:    stress,
		Timestamp: now.UTC().Format(TimestampLayout),
	}
}

type LogMoodRequest struct {
	Mood   *float64 `json:"mood"`
	Stress *float64 `json:"stress"`
	UserID string   `json:"userId"`
}

type StressDetection struct {
	Level         string  `json:"level"` // "none" | "low" | "moderate" | "high"
	Stressed      bool    `json:"stressed"`
	AverageStress float64 `json:"averageStress"`
	AverageMood   float64 `json:"averageMood"`
	Trend         string  `json:"trend"` // "rising" | "falling" | "steady"
	Window        int     `json:"window"`
	Message       string  `json:"message"`
}

type LogMoodResponse struct {
	Detection StressDetection `json:"detection"`
	Entries   []MoodEntry     `json:"entries"`
}

type MoodListResponse struct {
	Entries []MoodEntry `json:"entries"`
}

// SummaryResponse carries the trend summary as one opaque string.
type SummaryResponse struct {
	Summary string `json:"summary"`
}
