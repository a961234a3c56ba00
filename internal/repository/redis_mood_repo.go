package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"mindmate-backend/internal/models"
)

type RedisMoodRepo struct {
	redis *redis.Client
}

func NewRedisMoodRepo(redisClient *redis.Client) *RedisMoodRepo {
	return &RedisMoodRepo{redis: redisClient}
}

func moodKey(userID string) string {
	return fmt.Sprintf("mood:entries:%s", userID)
}

func (r *RedisMoodRepo) Read(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	raw, err := r.redis.Get(ctx, moodKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.MoodEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mood entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("[STORE] Ignoring unreadable entries for %s: %v", userID, err)
		return []models.MoodEntry{}, nil
	}
	return nonNil(entries), nil
}

func (r *RedisMoodRepo) Write(ctx context.Context, userID string, entries []models.MoodEntry) error {
	data, err := json.Marshal(nonNil(entries))
	if err != nil {
		return fmt.Errorf("failed to encode mood entries: %w", err)
	}
	if err := r.redis.Set(ctx, moodKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write mood entries: %w", err)
	}
	return nil
}
