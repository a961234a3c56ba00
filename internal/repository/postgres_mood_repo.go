package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mindmate-backend/internal/models"
)

// Querier is the subset of *pgxpool.Pool used by PostgresMoodRepo.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresMoodRepo struct {
	db Querier
}

func NewPostgresMoodRepo(db Querier) *PostgresMoodRepo {
	return &PostgresMoodRepo{db: db}
}

func (r *PostgresMoodRepo) Read(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT mood, stress, recorded_at FROM mood_entries WHERE user_id = $1 ORDER BY position`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var e models.MoodEntry
		if err := rows.Scan(&e.Mood, &e.Stress, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mood entries: %w", err)
	}
	return entries, nil
}

// Write replaces the user's entries in a single transaction.
func (r *PostgresMoodRepo) Write(ctx context.Context, userID string, entries []models.MoodEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM mood_entries WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear mood entries: %w", err)
	}

	for i, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO mood_entries (user_id, position, mood, stress, recorded_at) VALUES ($1, $2, $3, $4, $5)`,
			userID, i, e.Mood, e.Stress, e.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert mood entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mood entries: %w", err)
	}
	return nil
}
