package catalog

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"
)

// DefaultTable is the table LoadSQLite reads when no table name is given.
const DefaultTable = "books"

// BooksSchema creates the catalog table for SQLite-backed deployments.
const BooksSchema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	category TEXT NOT NULL,
	subcategory TEXT,
	difficulty INTEGER NOT NULL,
	readability INTEGER NOT NULL,
	style TEXT,
	learning_type TEXT NOT NULL,
	is_beginner_friendly INTEGER NOT NULL,
	is_intermediate INTEGER NOT NULL,
	is_advanced INTEGER NOT NULL,
	chronology_hint TEXT,
	short_description TEXT,
	store_url TEXT
);
`

// LoadSQLite reads the book catalog wholesale from a SQLite table and
// validates it, mirroring LoadCSV's error contract: *LoadError when the
// database is unreachable, *ValidationError when the data is bad.
func LoadSQLite(dbPath, table string) (*Catalog, error) {
	if table == "" {
		table = DefaultTable
	}

	if _, err := os.Stat(dbPath); err != nil {
		return nil, &LoadError{Source: dbPath, Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &LoadError{Source: dbPath, Err: err}
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(`
		SELECT id, title, author, category,
		       COALESCE(subcategory, ''), difficulty, readability,
		       COALESCE(style, ''), learning_type,
		       is_beginner_friendly, is_intermediate, is_advanced,
		       COALESCE(chronology_hint, ''), COALESCE(short_description, ''),
		       COALESCE(store_url, '')
		FROM %s ORDER BY rowid`, table)

	rows, err := db.Query(query)
	if err != nil {
		return nil, &LoadError{Source: dbPath, Err: fmt.Errorf("failed to query table %s: %w", table, err)}
	}
	defer func() { _ = rows.Close() }()

	var records []BookRecord
	for rows.Next() {
		var rec BookRecord
		var category, learningType string
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Author, &category,
			&rec.Subcategory, &rec.Difficulty, &rec.Readability,
			&rec.Style, &learningType,
			&rec.BeginnerFriendly, &rec.Intermediate, &rec.Advanced,
			&rec.ChronologyHint, &rec.ShortDescription, &rec.StoreURL,
		); err != nil {
			return nil, &LoadError{Source: dbPath, Err: fmt.Errorf("failed to scan row: %w", err)}
		}
		rec.Category = Category(category)
		rec.LearningType = LearningType(learningType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: dbPath, Err: err}
	}

	cat := New(records)
	if err := Validate(cat); err != nil {
		return nil, err
	}

	slog.Debug("Catalog loaded", "source", dbPath, "table", table, "books", cat.Len())
	return cat, nil
}
