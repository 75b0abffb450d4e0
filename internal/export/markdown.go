// Package export renders generated learning paths to markdown notes,
// JSON documents and PDF reports.
package export

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/halchemy/bookpath/internal/fileutil"
	"github.com/halchemy/bookpath/internal/frontmatter"
	"github.com/halchemy/bookpath/internal/recommend"
)

// MarkdownOptions controls how a path note is written.
type MarkdownOptions struct {
	// Directory is the output directory for the note
	Directory string
	// Rationale is the librarian's explanation, empty when not requested
	Rationale string
	// Covers maps book ID to a relative image path under the output directory
	Covers map[int]string
	// Overwrite replaces an existing note instead of skipping it
	Overwrite bool
}

// NoteTitle derives the note title for a path from its query.
func NoteTitle(q recommend.Query) string {
	title := fmt.Sprintf("%s Learning Path (%s, %s)", titleCase(q.Category), q.Level, q.Depth)
	return title
}

// WriteMarkdown renders the path as a markdown note with YAML frontmatter.
// It returns the file path and whether a file was actually written.
func WriteMarkdown(p recommend.Path, opts MarkdownOptions) (string, bool, error) {
	title := NoteTitle(p.Query)
	filePath := fileutil.GetMarkdownFilePath(title, opts.Directory)

	content := buildMarkdown(p, title, opts)

	written, err := fileutil.WriteFileWithOverwrite(filePath, []byte(content), 0644, opts.Overwrite)
	if err != nil {
		return "", false, fmt.Errorf("failed to write markdown: %w", err)
	}
	if !written {
		slog.Info("Skipping existing note", "file", filePath)
	}
	return filePath, written, nil
}

func buildMarkdown(p recommend.Path, title string, opts MarkdownOptions) string {
	mb := fileutil.NewMarkdownBuilder()

	mb.AddTitle(title)
	mb.AddField("type", frontmatter.NoteType)
	mb.AddField("category", strings.ToLower(p.Query.Category))
	mb.AddField("subcategory", strings.ToLower(p.Query.Subcategory))
	mb.AddField("level", string(p.Query.Level))
	mb.AddField("style", strings.ToLower(p.Query.Style))
	mb.AddField("depth", string(p.Query.Depth))
	mb.AddField("book_count", len(p.Books))

	if p.Empty() {
		mb.AddParagraph("No books in the catalog match this request. Try a broader level or a different subcategory.")
		mb.AddCallout("tip", "Librarian's hint", p.Hint)
		return mb.Build()
	}

	if opts.Rationale != "" {
		mb.AddHeading(2, "Why this path?")
		mb.AddParagraph(opts.Rationale)
	}

	mb.AddHeading(2, "The Books")
	for i, book := range p.Books {
		mb.AddHeading(3, fmt.Sprintf("%d. %s", i+1, book.Title))
		mb.AddParagraph(fmt.Sprintf("*%s*", book.Author))
		if cover, ok := opts.Covers[book.ID]; ok {
			mb.AddImage(cover)
		}
		if book.ShortDescription != "" {
			mb.AddParagraph(book.ShortDescription)
		}
		mb.AddExternalLink("Buy link", book.StoreURL)
	}

	mb.AddCallout("tip", "Librarian's hint", p.Hint)

	return mb.Build()
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
