package recommend

import (
	"sort"
	"strconv"
	"strings"

	"github.com/halchemy/bookpath/internal/catalog"
)

// Sequence orders the candidate set into a learning path and truncates it
// to the depth limit. The sort is stable, so identical input always yields
// identical output and ties keep their original relative order.
func Sequence(candidates []catalog.BookRecord, depth Depth) []catalog.BookRecord {
	if len(candidates) == 0 {
		return []catalog.BookRecord{}
	}

	ordered := make([]catalog.BookRecord, len(candidates))
	copy(ordered, candidates)

	switch dominantLearningType(candidates) {
	case catalog.NarrativeHistory:
		sort.SliceStable(ordered, func(i, j int) bool {
			ci, cj := chronoKey(ordered[i].ChronologyHint), chronoKey(ordered[j].ChronologyHint)
			if ci != cj {
				return chronoLess(ci, cj)
			}
			return ordered[i].Difficulty < ordered[j].Difficulty
		})
	default:
		// procedural-skill, behavioral-skill and everything else:
		// easiest first, most readable first among equals.
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].Difficulty != ordered[j].Difficulty {
				return ordered[i].Difficulty < ordered[j].Difficulty
			}
			return ordered[i].Readability > ordered[j].Readability
		})
	}

	limit := depth.Limit()
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// dominantLearningType returns the most frequent learning type among the
// candidates. Ties go to the type that appears first in candidate order,
// which keeps the rule deterministic regardless of map iteration.
func dominantLearningType(candidates []catalog.BookRecord) catalog.LearningType {
	counts := make(map[catalog.LearningType]int)
	var firstSeen []catalog.LearningType
	for _, rec := range candidates {
		if counts[rec.LearningType] == 0 {
			firstSeen = append(firstSeen, rec.LearningType)
		}
		counts[rec.LearningType]++
	}

	var dominant catalog.LearningType
	best := 0
	for _, lt := range firstSeen {
		if counts[lt] > best {
			dominant = lt
			best = counts[lt]
		}
	}
	return dominant
}

// Chronology hints mix era labels and numeric years. The total order used
// for narrative-history sorting is: known era labels first (in their fixed
// historical order), then numeric tokens by value, then everything else
// lexicographically.
type chrono struct {
	class int // 0 = era label, 1 = numeric, 2 = other
	rank  int
	text  string
}

var eraRanks = map[string]int{
	"ancient":      0,
	"classical":    1,
	"medieval":     2,
	"renaissance":  3,
	"early-modern": 4,
	"modern":       5,
	"contemporary": 6,
}

func chronoKey(hint string) chrono {
	normalized := strings.ToLower(strings.TrimSpace(hint))
	if rank, ok := eraRanks[normalized]; ok {
		return chrono{class: 0, rank: rank}
	}
	if n, err := strconv.Atoi(normalized); err == nil {
		return chrono{class: 1, rank: n}
	}
	return chrono{class: 2, text: normalized}
}

func chronoLess(a, b chrono) bool {
	if a.class != b.class {
		return a.class < b.class
	}
	if a.class == 2 {
		return a.text < b.text
	}
	return a.rank < b.rank
}
