package recommend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halchemy/bookpath/internal/catalog"
)

// sampleCatalog mirrors a small curated library: five habits books and five
// coding books with inverse difficulty/readability pairs.
func sampleCatalog() *catalog.Catalog {
	var records []catalog.BookRecord
	for i := 1; i <= 10; i++ {
		rec := catalog.BookRecord{
			ID:          i,
			Title:       fmt.Sprintf("Book %d", i),
			Author:      "Author",
			Difficulty:  (i-1)%5 + 1,
			Readability: 5 - (i-1)%5,
		}
		if i <= 5 {
			rec.Category = catalog.CategoryHabits
			rec.Subcategory = "general"
			rec.LearningType = catalog.BehavioralSkill
		} else {
			rec.Category = catalog.CategoryCoding
			rec.LearningType = catalog.ProceduralSkill
			switch i {
			case 6, 7, 10:
				rec.Subcategory = "python"
			default:
				rec.Subcategory = "rust"
			}
		}
		// First three habits books are tactical, the rest story-driven;
		// all coding books are tactical.
		if i <= 3 || i > 5 {
			rec.Style = "tactical/how-to"
		} else {
			rec.Style = "story-driven"
		}
		rec.BeginnerFriendly = rec.Difficulty <= 2
		rec.Intermediate = rec.Difficulty >= 2 && rec.Difficulty <= 4
		rec.Advanced = rec.Difficulty >= 4
		records = append(records, rec)
	}
	return catalog.New(records)
}

func query(category string, opts ...func(*Query)) Query {
	q := Query{Category: category, Level: LevelAll, Depth: DepthShort}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

func TestFilterCategory(t *testing.T) {
	cat := sampleCatalog()

	testCases := []struct {
		name     string
		category string
		want     int
	}{
		{name: "exact case", category: "habits", want: 5},
		{name: "mixed case", category: "Habits", want: 5},
		{name: "other category", category: "coding", want: 5},
		{name: "unknown category", category: "gardening", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Filter(cat, query(tc.category))
			require.Len(t, result, tc.want)
			for _, rec := range result {
				assert.Equal(t, strings.ToLower(tc.category), strings.ToLower(string(rec.Category)))
			}
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	cat := sampleCatalog()
	q := query("coding", func(q *Query) { q.Subcategory = "python" })

	once := Filter(cat, q)
	twice := Filter(catalog.New(once), q)
	assert.Equal(t, once, twice)
}

func TestFilterSubcategory(t *testing.T) {
	cat := sampleCatalog()

	t.Run("adopts matching subcategory", func(t *testing.T) {
		result := Filter(cat, query("coding", func(q *Query) { q.Subcategory = "python" }))
		require.Len(t, result, 3)
		for _, rec := range result {
			assert.Equal(t, "python", rec.Subcategory)
		}
	})

	t.Run("falls back when no subcategory matches", func(t *testing.T) {
		result := Filter(cat, query("coding", func(q *Query) { q.Subcategory = "java" }))
		// Unmatched subcategory never empties the result
		assert.Len(t, result, 5)
	})
}

func TestFilterLevel(t *testing.T) {
	cat := sampleCatalog()

	t.Run("beginner is a hard filter", func(t *testing.T) {
		result := Filter(cat, query("habits", func(q *Query) { q.Level = LevelBeginner }))
		require.Len(t, result, 2)
		for _, rec := range result {
			assert.True(t, rec.BeginnerFriendly)
		}
	})

	t.Run("intermediate", func(t *testing.T) {
		result := Filter(cat, query("habits", func(q *Query) { q.Level = LevelIntermediate }))
		require.Len(t, result, 3)
		for _, rec := range result {
			assert.True(t, rec.Intermediate)
		}
	})

	t.Run("advanced", func(t *testing.T) {
		result := Filter(cat, query("habits", func(q *Query) { q.Level = LevelAdvanced }))
		require.Len(t, result, 2)
		for _, rec := range result {
			assert.True(t, rec.Advanced)
		}
	})

	t.Run("all bypasses the level stage", func(t *testing.T) {
		result := Filter(cat, query("habits"))
		assert.Len(t, result, 5)
	})
}

func TestFilterStyleSoftThreshold(t *testing.T) {
	cat := sampleCatalog()

	t.Run("adopted at three or more matches", func(t *testing.T) {
		result := Filter(cat, query("habits", func(q *Query) { q.Style = "tactical/how-to" }))
		require.Len(t, result, 3)
		for _, rec := range result {
			assert.Equal(t, "tactical/how-to", rec.Style)
		}
	})

	t.Run("kept broad below threshold", func(t *testing.T) {
		// Only two story-driven habits books, so the pre-style set survives
		result := Filter(cat, query("habits", func(q *Query) { q.Style = "story-driven" }))
		assert.Len(t, result, 5)
	})
}

func TestFilterEmptyCatalog(t *testing.T) {
	empty := catalog.New(nil)

	result := Filter(empty, query("habits", func(q *Query) {
		q.Subcategory = "general"
		q.Level = LevelBeginner
		q.Style = "tactical/how-to"
	}))
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
