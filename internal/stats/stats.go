// Package stats tracks simple usage counters for the recommender.
// The counters live in a small JSON file; a missing or corrupt file is
// treated as a fresh start and persistence failures never interrupt a
// recommendation.
package stats

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Stats holds cumulative usage counters.
type Stats struct {
	PathsGenerated   int `json:"paths_generated"`
	BooksRecommended int `json:"books_recommended"`
}

// FilePath returns the configured stats file location.
func FilePath() string {
	return viper.GetString("stats.file")
}

// Load reads the stats file. A missing, unreadable or corrupt file
// yields zeroed counters rather than an error.
func Load(path string) Stats {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}
	}

	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Debug("Ignoring corrupt stats file", "path", path, "error", err)
		return Stats{}
	}
	return s
}

// Record bumps the counters for one generated path and writes the file
// back. Write failures are logged and swallowed; the updated counters
// are returned either way.
func Record(path string, numBooks int) Stats {
	s := Load(path)
	s.PathsGenerated++
	s.BooksRecommended += numBooks

	if err := save(path, s); err != nil {
		slog.Warn("Failed to persist usage stats", "path", path, "error", err)
	}
	return s
}

func save(path string, s Stats) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
