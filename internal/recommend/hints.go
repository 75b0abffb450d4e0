package recommend

import "strings"

// categoryHints maps a topic to a short piece of study advice shown next to
// the path. The mapping is fixed; unknown categories get the generic hint.
var categoryHints = map[string]string{
	"habits":       "Focus on one small change at a time. Don't try to read all these at once; pick the first one, implement a single micro-habit (e.g., 'floss one tooth'), and track it for 2 weeks before adding more.",
	"coding":       "Reading code is different from reading prose. Type out the examples manually (don't copy-paste). Build a tiny project after each chapter to cement the concepts.",
	"history":      "Create a timeline as you read. Note down the key players and their motivations. History is about cause and effect, not just dates.",
	"cooking":      "Mise en place is your best friend. Read the whole recipe before you start. Try cooking the same simple dish 3 times in a row to truly master the technique.",
	"productivity": "Productivity isn't about doing more, it's about doing the right things. Pick one system (like GTD or Deep Work) and stick to it for 30 days. Consistency beats intensity.",
	"business":     "Take notes on mental models. Ask yourself: 'How can I apply this principle to my current project or team?' Business books are toolkits, not novels.",
}

// genericHint is returned for any category without dedicated advice.
const genericHint = "Read actively. Take notes, highlight key passages, and try to explain the concepts to someone else to test your understanding."

// HintFor returns study advice for a category. It is total: lookup is
// case-insensitive and unknown categories fall back to the generic hint.
func HintFor(category string) string {
	if hint, ok := categoryHints[strings.ToLower(strings.TrimSpace(category))]; ok {
		return hint
	}
	return genericHint
}
