// Package recommend implements the deterministic recommendation engine:
// multi-stage filtering with soft-filter fallback, type-aware sequencing,
// and the per-category study hints.
package recommend

import (
	"fmt"
	"strings"
)

// Level is the learner's skill level. LevelAll bypasses level filtering and
// exists for tests and diagnostics.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAll          Level = "all"
)

// ParseLevel validates a level token. An empty token defaults to beginner;
// anything unrecognized is an invalid-argument error.
func ParseLevel(value string) (Level, error) {
	switch Level(strings.ToLower(value)) {
	case "":
		return LevelBeginner, nil
	case LevelBeginner:
		return LevelBeginner, nil
	case LevelIntermediate:
		return LevelIntermediate, nil
	case LevelAdvanced:
		return LevelAdvanced, nil
	case LevelAll:
		return LevelAll, nil
	}
	return "", fmt.Errorf("unrecognized level %q (want beginner, intermediate, advanced or all)", value)
}

// Depth controls how many books a path may contain.
type Depth string

const (
	DepthShort Depth = "short"
	DepthDeep  Depth = "deep"
)

const (
	shortPathLimit = 3
	deepPathLimit  = 7
)

// ParseDepth validates a depth token. An empty token defaults to short.
func ParseDepth(value string) (Depth, error) {
	switch Depth(strings.ToLower(value)) {
	case "":
		return DepthShort, nil
	case DepthShort:
		return DepthShort, nil
	case DepthDeep:
		return DepthDeep, nil
	}
	return "", fmt.Errorf("unrecognized depth %q (want short or deep)", value)
}

// Limit returns the maximum path length for this depth.
func (d Depth) Limit() int {
	if d == DepthDeep {
		return deepPathLimit
	}
	return shortPathLimit
}

// Query carries one request's parameters. It is constructed fresh per
// request by the caller (CLI flags or the librarian's tool call) and passed
// by value; the engine holds no session state.
type Query struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Level       Level  `json:"level"`
	Style       string `json:"style,omitempty"`
	Depth       Depth  `json:"depth"`
}

// NewQuery builds a validated Query from raw tokens. Category is required
// and never defaulted; level and depth fall back to their documented
// defaults when omitted.
func NewQuery(category, subcategory, level, style, depth string) (Query, error) {
	if strings.TrimSpace(category) == "" {
		return Query{}, fmt.Errorf("category is required")
	}

	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return Query{}, err
	}
	parsedDepth, err := ParseDepth(depth)
	if err != nil {
		return Query{}, err
	}

	return Query{
		Category:    strings.TrimSpace(category),
		Subcategory: strings.TrimSpace(subcategory),
		Level:       parsedLevel,
		Style:       strings.TrimSpace(style),
		Depth:       parsedDepth,
	}, nil
}
