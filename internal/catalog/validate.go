package catalog

import (
	"fmt"
	"net/url"
)

// Validate checks every catalog invariant in a single pass and reports all
// violations together. It never mutates the catalog. Loaders call this
// before returning, so downstream code can trust any *Catalog it receives.
func Validate(cat *Catalog) error {
	return validateRecords(cat, nil)
}

// validateRecords runs the record-level checks, appending to any issues the
// loader already collected (column coercion problems and the like).
func validateRecords(cat *Catalog, issues []string) error {
	seen := make(map[int]string, cat.Len())

	for _, rec := range cat.Records() {
		if prev, dup := seen[rec.ID]; dup {
			issues = append(issues, fmt.Sprintf("duplicate book id %d (already used by %q)", rec.ID, prev))
		} else {
			seen[rec.ID] = rec.Title
		}

		if rec.Title == "" {
			issues = append(issues, fmt.Sprintf("book %d: title is empty", rec.ID))
		}
		if rec.Author == "" {
			issues = append(issues, fmt.Sprintf("book %d: author is empty", rec.ID))
		}

		if rec.Difficulty < 1 || rec.Difficulty > 5 {
			issues = append(issues, fmt.Sprintf("book %d: difficulty %d outside 1-5 range", rec.ID, rec.Difficulty))
		}
		if rec.Readability < 1 || rec.Readability > 5 {
			issues = append(issues, fmt.Sprintf("book %d: readability %d outside 1-5 range", rec.ID, rec.Readability))
		}

		if !ValidCategory(string(rec.Category)) {
			issues = append(issues, fmt.Sprintf("book %d: unrecognized category %q", rec.ID, rec.Category))
		}
		if !ValidLearningType(string(rec.LearningType)) {
			issues = append(issues, fmt.Sprintf("book %d: unrecognized learning_type %q", rec.ID, rec.LearningType))
		}

		if rec.StoreURL != "" && !validStoreURL(rec.StoreURL) {
			issues = append(issues, fmt.Sprintf("book %d: store_url %q is not a valid http(s) URL", rec.ID, rec.StoreURL))
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validStoreURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
