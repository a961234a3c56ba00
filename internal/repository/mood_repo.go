package repository

import (
	"context"

	"mindmate-backend/internal/models"
)

// MoodRepository is the read/modify/write store for mood entries.
// Writes replace the whole list for a user; concurrent writers are
// last-writer-wins.
type MoodRepository interface {
	Read(ctx context.Context, userID string) ([]models.MoodEntry, error)
	Write(ctx context.Context, userID string, entries []models.MoodEntry) error
}

// Partition policies for the file store.
const (
	PartitionByUser = "user"
	PartitionFlat   = "flat"
)

// Last returns at most the n most recent entries.
func Last(entries []models.MoodEntry, n int) []models.MoodEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
