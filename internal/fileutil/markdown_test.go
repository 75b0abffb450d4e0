package fileutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownBuilder(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle("Habits Path").
		AddField("category", "habits").
		AddField("books", 3).
		AddStringArray("authors", []string{"James Clear", "BJ Fogg"}).
		AddHeading(1, "Your Learning Path").
		AddParagraph("Start small.").
		AddExternalLink("Buy", "https://example.com/book").
		Build()

	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.Contains(t, doc, `title: "Habits Path"`)
	assert.Contains(t, doc, `category: "habits"`)
	assert.Contains(t, doc, "books: 3")
	assert.Contains(t, doc, `  - "James Clear"`)
	assert.Contains(t, doc, "# Your Learning Path")
	assert.Contains(t, doc, "[Buy](https://example.com/book)")
}

func TestMarkdownBuilderSkipsEmptyValues(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle("T").
		AddField("subcategory", "").
		AddField("count", 0).
		AddParagraph("").
		AddImage("").
		AddExternalLink("Link", "").
		Build()

	assert.NotContains(t, doc, "subcategory")
	assert.NotContains(t, doc, "count")
	assert.NotContains(t, doc, "![](")
}

func TestMarkdownBuilderCallout(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle("T").
		AddCallout("tip", "Expert Hint", "Line one\nLine two").
		Build()

	assert.Contains(t, doc, ">[!tip]- Expert Hint")
	assert.Contains(t, doc, "> Line one")
	assert.Contains(t, doc, "> Line two")
}
