package datastore

import (
	"fmt"
	"strings"
	"time"

	"github.com/halchemy/bookpath/internal/recommend"
)

// DefaultDatabase is the logical database name used for remote inserts.
const DefaultDatabase = "bookpath"

// HistoryTable holds one row per book of every generated path.
const HistoryTable = "path_history"

// HistorySchema creates the path history table.
const HistorySchema = `CREATE TABLE IF NOT EXISTS path_history (
	generated_at TEXT NOT NULL,
	category TEXT NOT NULL,
	subcategory TEXT,
	level TEXT NOT NULL,
	style TEXT,
	depth TEXT NOT NULL,
	position INTEGER NOT NULL,
	book_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	author TEXT NOT NULL
)`

// HistoryRecords flattens a generated path into insertable rows, one per
// book in sequence order. An empty path yields no rows.
func HistoryRecords(p recommend.Path, generatedAt time.Time) []map[string]any {
	ts := generatedAt.UTC().Format(time.RFC3339)

	records := make([]map[string]any, 0, len(p.Books))
	for i, book := range p.Books {
		records = append(records, map[string]any{
			"generated_at": ts,
			"category":     strings.ToLower(p.Query.Category),
			"subcategory":  strings.ToLower(p.Query.Subcategory),
			"level":        string(p.Query.Level),
			"style":        strings.ToLower(p.Query.Style),
			"depth":        string(p.Query.Depth),
			"position":     i + 1,
			"book_id":      book.ID,
			"title":        book.Title,
			"author":       book.Author,
		})
	}
	return records
}

// RecordPath writes one generated path into the history table, creating
// the table first when the store supports it.
func RecordPath(store Store, p recommend.Path) error {
	if p.Empty() {
		return nil
	}

	if err := store.CreateTable(HistorySchema); err != nil {
		return fmt.Errorf("failed to prepare history table: %w", err)
	}
	if err := store.BatchInsert(DefaultDatabase, HistoryTable, HistoryRecords(p, time.Now())); err != nil {
		return fmt.Errorf("failed to record path: %w", err)
	}
	return nil
}
