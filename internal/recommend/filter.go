package recommend

import (
	"strings"

	"github.com/halchemy/bookpath/internal/catalog"
)

// styleAdoptionThreshold is the minimum number of style matches required
// before the soft style filter is adopted. Below it the broader set is kept
// so a soft preference never shrinks a path to nothing useful.
const styleAdoptionThreshold = 3

// Filter narrows the catalog to the candidate set for one query. It never
// returns nil: no matches means an empty slice. Stages run in strict order,
// each on the previous stage's output; category and level are hard filters,
// subcategory and style are soft ones that fall back to the broader set.
func Filter(cat *catalog.Catalog, q Query) []catalog.BookRecord {
	candidates := filterCategory(cat.Records(), q.Category)
	candidates = filterSubcategory(candidates, q.Subcategory)
	candidates = filterLevel(candidates, q.Level)
	candidates = filterStyle(candidates, q.Style)
	return candidates
}

func filterCategory(records []catalog.BookRecord, category string) []catalog.BookRecord {
	want := strings.ToLower(category)
	matched := make([]catalog.BookRecord, 0, len(records))
	for _, rec := range records {
		if strings.ToLower(string(rec.Category)) == want {
			matched = append(matched, rec)
		}
	}
	return matched
}

// filterSubcategory keeps the broader category set when the requested
// subcategory has no matches at all.
func filterSubcategory(candidates []catalog.BookRecord, subcategory string) []catalog.BookRecord {
	if subcategory == "" || len(candidates) == 0 {
		return candidates
	}

	want := strings.ToLower(subcategory)
	var matched []catalog.BookRecord
	for _, rec := range candidates {
		if strings.ToLower(rec.Subcategory) == want {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return candidates
	}
	return matched
}

// filterLevel is a hard filter: it may legitimately empty the set.
// LevelAll bypasses it entirely.
func filterLevel(candidates []catalog.BookRecord, level Level) []catalog.BookRecord {
	if level == LevelAll || len(candidates) == 0 {
		return candidates
	}

	matched := make([]catalog.BookRecord, 0, len(candidates))
	for _, rec := range candidates {
		var ok bool
		switch level {
		case LevelBeginner:
			ok = rec.BeginnerFriendly
		case LevelIntermediate:
			ok = rec.Intermediate
		case LevelAdvanced:
			ok = rec.Advanced
		}
		if ok {
			matched = append(matched, rec)
		}
	}
	return matched
}

// filterStyle adopts the style matches only when there are at least
// styleAdoptionThreshold of them; otherwise the pre-style set survives.
func filterStyle(candidates []catalog.BookRecord, style string) []catalog.BookRecord {
	if style == "" || len(candidates) == 0 {
		return candidates
	}

	want := strings.ToLower(style)
	var matched []catalog.BookRecord
	for _, rec := range candidates {
		if strings.ToLower(rec.Style) == want {
			matched = append(matched, rec)
		}
	}
	if len(matched) >= styleAdoptionThreshold {
		return matched
	}
	return candidates
}
