package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// requiredColumns are the CSV columns every catalog must carry. A missing
// column fails the whole load, it is never a per-row skip.
var requiredColumns = []string{
	"id",
	"title",
	"author",
	"category",
	"subcategory",
	"difficulty",
	"readability",
	"style",
	"learning_type",
	"is_beginner_friendly",
	"is_intermediate",
	"is_advanced",
}

// optionalColumns are read when present and left zero-valued otherwise.
var optionalColumns = []string{
	"chronology_hint",
	"short_description",
	"store_url",
}

// LoadCSV reads the book catalog from a header-addressed CSV file and
// validates it. The returned catalog is fully validated; any structural
// problem yields a *ValidationError listing every issue found, and an
// unreadable source yields a *LoadError.
func LoadCSV(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	if fi, err := file.Stat(); err != nil || fi.Size() == 0 {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("catalog file is empty or cannot be read")}
	}

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("failed to read CSV header: %w", err)}
	}

	columns, issues := mapColumns(header)
	if len(issues) > 0 {
		// Without the full column set no row can be trusted, so stop here.
		return nil, &ValidationError{Issues: issues}
	}

	var records []BookRecord
	line := 1
	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: path, Err: fmt.Errorf("failed to read CSV row %d: %w", line, err)}
		}

		rec, rowIssues := parseRow(row, columns, line)
		issues = append(issues, rowIssues...)
		records = append(records, rec)
	}

	cat := New(records)
	if err := validateRecords(cat, issues); err != nil {
		return nil, err
	}

	slog.Debug("Catalog loaded", "source", path, "books", cat.Len())
	return cat, nil
}

// mapColumns resolves header names to indexes and reports every missing
// required column by name.
func mapColumns(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var issues []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			issues = append(issues, fmt.Sprintf("missing required column %q", name))
		}
	}
	return columns, issues
}

// parseRow converts one CSV row into a BookRecord, collecting coercion
// problems instead of stopping at the first one.
func parseRow(row []string, columns map[string]int, line int) (BookRecord, []string) {
	var issues []string

	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	intCell := func(name string) int {
		value := cell(name)
		n, err := strconv.Atoi(value)
		if err != nil {
			issues = append(issues, fmt.Sprintf("row %d: column %q has non-integer value %q", line, name, value))
			return 0
		}
		return n
	}

	boolCell := func(name string) bool {
		value := cell(name)
		b, err := parseBool(value)
		if err != nil {
			issues = append(issues, fmt.Sprintf("row %d: column %q has non-boolean value %q", line, name, value))
			return false
		}
		return b
	}

	rec := BookRecord{
		ID:               intCell("id"),
		Title:            cell("title"),
		Author:           cell("author"),
		Category:         Category(cell("category")),
		Subcategory:      cell("subcategory"),
		Difficulty:       intCell("difficulty"),
		Readability:      intCell("readability"),
		Style:            cell("style"),
		LearningType:     LearningType(cell("learning_type")),
		BeginnerFriendly: boolCell("is_beginner_friendly"),
		Intermediate:     boolCell("is_intermediate"),
		Advanced:         boolCell("is_advanced"),
		ChronologyHint:   cell("chronology_hint"),
		ShortDescription: cell("short_description"),
		StoreURL:         cell("store_url"),
	}

	return rec, issues
}

// parseBool coerces the textual boolean representations found in catalog
// exports. Anything else is a validation error, never a silent default.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", value)
}
