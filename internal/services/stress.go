package services

import (
	"math"

	"mindmate-backend/internal/models"
)

const (
	stressWindow       = 5
	highStressAverage  = 4.0
	moderateStressAvg  = 3.0
	highStressReading  = 4.0
	trendChangeMinimum = 1.0
)

// DetectStress looks at the most recent entries and classifies the current
// stress level and its direction.
func DetectStress(entries []models.MoodEntry) models.StressDetection {
	if len(entries) == 0 {
		return models.StressDetection{
			Level:   "none",
			Trend:   "steady",
			Message: "No entries yet. Log how you feel to start tracking.",
		}
	}

	window := entries
	if len(window) > stressWindow {
		window = window[len(window)-stressWindow:]
	}

	var stressSum, moodSum float64
	for _, e := range window {
		stressSum += e.Stress
		moodSum += e.Mood
	}
	n := float64(len(window))
	avgStress := round1(stressSum / n)
	avgMood := round1(moodSum / n)

	level := "low"
	switch {
	case avgStress >= highStressAverage:
		level = "high"
	case avgStress >= moderateStressAvg:
		level = "moderate"
	}

	trend := "steady"
	delta := window[len(window)-1].Stress - window[0].Stress
	if delta >= trendChangeMinimum {
		trend = "rising"
	} else if delta <= -trendChangeMinimum {
		trend = "falling"
	}

	latest := window[len(window)-1]
	stressed := level == "high" || latest.Stress >= highStressReading

	return models.StressDetection{
		Level:         level,
		Stressed:      stressed,
		AverageStress: avgStress,
		AverageMood:   avgMood,
		Trend:         trend,
		Window:        len(window),
		Message:       detectionMessage(level, trend, stressed),
	}
}

func detectionMessage(level, trend string, stressed bool) string {
	switch {
	case stressed:
		return "Your stress looks high right now. A short breathing break might help."
	case level == "moderate" && trend == "rising":
		return "Stress has been creeping up. Consider pausing for a quick reset."
	case level == "moderate":
		return "Stress is moderate. Keep an eye on it and take breaks when you can."
	case trend == "falling":
		return "Stress is easing. Nice work looking after yourself."
	default:
		return "Stress looks manageable. Keep checking in."
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
