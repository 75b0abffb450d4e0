package recommend

import (
	"log/slog"

	"github.com/halchemy/bookpath/internal/catalog"
)

// Path is the result of one query: an ordered, length-limited sequence of
// books plus the study hint for the topic. A zero-length path is a valid
// "no matches" result, not an error.
type Path struct {
	Query Query                `json:"query"`
	Books []catalog.BookRecord `json:"books"`
	Hint  string               `json:"hint"`
}

// Empty reports whether the path contains no books.
func (p Path) Empty() bool {
	return len(p.Books) == 0
}

// BuildPath runs the full pipeline for one query: filter, sequence, hint.
// It is a pure function over the immutable catalog; concurrent calls with
// separate queries are safe.
func BuildPath(cat *catalog.Catalog, q Query) Path {
	candidates := Filter(cat, q)
	books := Sequence(candidates, q.Depth)

	slog.Debug("Built learning path",
		"category", q.Category,
		"level", q.Level,
		"depth", q.Depth,
		"candidates", len(candidates),
		"books", len(books),
	)

	return Path{
		Query: q,
		Books: books,
		Hint:  HintFor(q.Category),
	}
}
