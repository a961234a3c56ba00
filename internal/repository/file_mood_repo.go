package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"mindmate-backend/internal/models"
)

// FileMoodRepo keeps every entry in one JSON file. With PartitionByUser the
// file holds an object keyed by user id; with PartitionFlat it holds a single
// array and the user id is ignored.
type FileMoodRepo struct {
	mu        sync.Mutex
	path      string
	partition string
}

func NewFileMoodRepo(path, partition string) *FileMoodRepo {
	if partition != PartitionFlat {
		partition = PartitionByUser
	}
	return &FileMoodRepo{path: path, partition: partition}
}

func (r *FileMoodRepo) Read(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.partition == PartitionFlat {
		var entries []models.MoodEntry
		r.load(&entries)
		return nonNil(entries), nil
	}

	all := map[string][]models.MoodEntry{}
	r.load(&all)
	return nonNil(all[userID]), nil
}

func (r *FileMoodRepo) Write(ctx context.Context, userID string, entries []models.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries = nonNil(entries)
	if r.partition == PartitionFlat {
		return r.save(entries)
	}

	all := map[string][]models.MoodEntry{}
	r.load(&all)
	if all == nil {
		all = map[string][]models.MoodEntry{}
	}
	all[userID] = entries
	return r.save(all)
}

// load decodes the file into v. Missing or corrupt files leave v untouched.
func (r *FileMoodRepo) load(v interface{}) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[STORE] Failed to read %s: %v", r.path, err)
		}
		return
	}
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[STORE] Ignoring unreadable data file %s: %v", r.path, err)
	}
}

func (r *FileMoodRepo) save(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mood data: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write mood data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write mood data: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func nonNil(entries []models.MoodEntry) []models.MoodEntry {
	if entries == nil {
		return []models.MoodEntry{}
	}
	return entries
}
