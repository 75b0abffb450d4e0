// Package catalog loads and validates the flat book catalog that all
// recommendations are computed from.
package catalog

import (
	"sort"
	"strings"
)

// Category is the closed set of top-level topics a book can belong to.
type Category string

const (
	CategoryHabits       Category = "habits"
	CategoryCoding       Category = "coding"
	CategoryHistory      Category = "history"
	CategoryCooking      Category = "cooking"
	CategoryProductivity Category = "productivity"
	CategoryBusiness     Category = "business"
	CategoryScience      Category = "science"
	CategoryPhilosophy   Category = "philosophy"
	CategoryDesign       Category = "design"
	CategoryPsychology   Category = "psychology"
	CategoryHealth       Category = "health"
	CategoryBiography    Category = "biography"
	CategorySocial       Category = "social"
)

// validCategories is the whitelist used during validation.
var validCategories = map[Category]bool{
	CategoryHabits:       true,
	CategoryCoding:       true,
	CategoryHistory:      true,
	CategoryCooking:      true,
	CategoryProductivity: true,
	CategoryBusiness:     true,
	CategoryScience:      true,
	CategoryPhilosophy:   true,
	CategoryDesign:       true,
	CategoryPsychology:   true,
	CategoryHealth:       true,
	CategoryBiography:    true,
	CategorySocial:       true,
}

// ValidCategory reports whether the value belongs to the closed category set.
// Matching is case-insensitive.
func ValidCategory(value string) bool {
	return validCategories[Category(strings.ToLower(value))]
}

// LearningType drives the sequencing heuristic for a candidate set.
type LearningType string

const (
	ProceduralSkill  LearningType = "procedural-skill"
	NarrativeHistory LearningType = "narrative-history"
	BehavioralSkill  LearningType = "behavioral-skill"
	Conceptual       LearningType = "conceptual"
	Reference        LearningType = "reference"
)

var validLearningTypes = map[LearningType]bool{
	ProceduralSkill:  true,
	NarrativeHistory: true,
	BehavioralSkill:  true,
	Conceptual:       true,
	Reference:        true,
}

// ValidLearningType reports whether the value belongs to the closed
// learning-type set. Matching is case-insensitive.
func ValidLearningType(value string) bool {
	return validLearningTypes[LearningType(strings.ToLower(value))]
}

// BookRecord is one catalog entry.
type BookRecord struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	Author           string       `json:"author"`
	Category         Category     `json:"category"`
	Subcategory      string       `json:"subcategory"`
	Difficulty       int          `json:"difficulty"`
	Readability      int          `json:"readability"`
	Style            string       `json:"style"`
	LearningType     LearningType `json:"learning_type"`
	BeginnerFriendly bool         `json:"is_beginner_friendly"`
	Intermediate     bool         `json:"is_intermediate"`
	Advanced         bool         `json:"is_advanced"`
	ChronologyHint   string       `json:"chronology_hint"`
	ShortDescription string       `json:"short_description"`
	StoreURL         string       `json:"store_url"`
}

// Catalog is an immutable, ordered collection of validated book records.
// It is loaded once and shared read-only between requests; nothing mutates
// it after Load returns.
type Catalog struct {
	records []BookRecord
}

// New builds a Catalog from records. The slice is copied so later mutation
// of the argument cannot leak into the catalog.
func New(records []BookRecord) *Catalog {
	copied := make([]BookRecord, len(records))
	copy(copied, records)
	return &Catalog{records: copied}
}

// Records returns the catalog contents in load order. Callers must treat
// the slice as read-only.
func (c *Catalog) Records() []BookRecord {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Categories returns the sorted distinct categories present in the catalog.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range c.Records() {
		key := strings.ToLower(string(rec.Category))
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
