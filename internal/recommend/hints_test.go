package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHintFor(t *testing.T) {
	testCases := []struct {
		name     string
		category string
		want     string
	}{
		{name: "known category", category: "habits", want: "micro-habit"},
		{name: "mixed case", category: "Coding", want: "Type out the examples"},
		{name: "surrounding whitespace", category: " history ", want: "timeline"},
		{name: "unknown category", category: "gardening", want: "Read actively"},
		{name: "category outside the live set", category: "science", want: "Read actively"},
		{name: "empty category", category: "", want: "Read actively"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hint := HintFor(tc.category)
			assert.NotEmpty(t, hint)
			assert.Contains(t, hint, tc.want)
		})
	}
}
