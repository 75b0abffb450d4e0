// Package frontmatter reads YAML frontmatter from generated markdown
// notes, so previously written learning paths can be inspected and
// round-tripped.
package frontmatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoteType is the frontmatter `type` value written on every path note.
const NoteType = "learning-path"

// ParsedNote is a markdown note split into frontmatter and body.
type ParsedNote struct {
	Frontmatter map[string]any
	Body        string
}

// PathNote holds the typed frontmatter of a learning-path note.
type PathNote struct {
	Title       string
	Category    string
	Subcategory string
	Level       string
	Style       string
	Depth       string
	BookCount   int
}

// ParseMarkdown splits markdown content into YAML frontmatter and body.
func ParseMarkdown(content []byte) (*ParsedNote, error) {
	trimmed := bytes.TrimSpace(content)
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return nil, fmt.Errorf("invalid markdown format: missing opening frontmatter delimiter")
	}

	parts := bytes.SplitN(trimmed, []byte("---"), 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid markdown format: missing closing frontmatter delimiter")
	}

	var fm map[string]any
	if err := yaml.Unmarshal(parts[1], &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return &ParsedNote{
		Frontmatter: fm,
		Body:        strings.TrimSpace(string(parts[2])),
	}, nil
}

// IsPathNote reports whether the note was written by the markdown exporter.
func (p *ParsedNote) IsPathNote() bool {
	return p.GetString("type") == NoteType
}

// PathNote extracts the typed learning-path fields. Notes written by other
// tools return an error so callers can skip them.
func (p *ParsedNote) PathNote() (PathNote, error) {
	if !p.IsPathNote() {
		return PathNote{}, fmt.Errorf("not a learning-path note (type %q)", p.GetString("type"))
	}

	return PathNote{
		Title:       p.GetString("title"),
		Category:    p.GetString("category"),
		Subcategory: p.GetString("subcategory"),
		Level:       p.GetString("level"),
		Style:       p.GetString("style"),
		Depth:       p.GetString("depth"),
		BookCount:   p.GetInt("book_count"),
	}, nil
}

// GetInt retrieves an integer frontmatter value, tolerating the int, float
// and string encodings different YAML writers produce. Missing or
// unconvertible keys return 0.
func (p *ParsedNote) GetInt(key string) int {
	val, ok := p.Frontmatter[key]
	if !ok {
		return 0
	}
	return IntFromAny(val)
}

// GetString retrieves a string frontmatter value, or "" when absent.
func (p *ParsedNote) GetString(key string) string {
	val, ok := p.Frontmatter[key]
	if !ok {
		return ""
	}
	return StringFromAny(val)
}

// IntFromAny converts int, int64, float64 and numeric string values to int.
func IntFromAny(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// StringFromAny extracts a trimmed string, or "" for non-string values.
func StringFromAny(val any) string {
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
