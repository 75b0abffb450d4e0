// Package recommend implements the recommend CLI command: it loads the
// catalog, builds a learning path and writes the requested exports.
package recommend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/halchemy/bookpath/internal/catalog"
	"github.com/halchemy/bookpath/internal/config"
	"github.com/halchemy/bookpath/internal/covers"
	"github.com/halchemy/bookpath/internal/datastore"
	apperrors "github.com/halchemy/bookpath/internal/errors"
	"github.com/halchemy/bookpath/internal/export"
	"github.com/halchemy/bookpath/internal/fileutil"
	"github.com/halchemy/bookpath/internal/librarian"
	"github.com/halchemy/bookpath/internal/recommend"
	"github.com/halchemy/bookpath/internal/stats"
	"github.com/halchemy/bookpath/internal/tui"
)

// Params carries everything the recommend command needs to run.
type Params struct {
	// Catalog source
	CSVPath    string
	SQLitePath string
	Table      string

	// Query parameters; ignored when Interactive is set
	Category    string
	Subcategory string
	Level       string
	Style       string
	Depth       string
	Interactive bool

	// Exports
	OutputDir  string
	WriteJSON  bool
	JSONOutput string
	WritePDF   bool
	PDFOutput  string
	Rationale  bool
	Overwrite  bool

	// Out is where the path is rendered; defaults to stdout
	Out io.Writer
}

// Test seams
var (
	selectQuery   = tui.SelectQuery
	fetchCoverURL = covers.FetchCoverURL
	newLibrarian  = librarian.New
)

// RunWithParams executes one recommendation end to end.
func RunWithParams(params Params) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	cat, err := loadCatalog(params)
	if err != nil {
		return err
	}

	query, err := resolveQuery(cat, params)
	if err != nil {
		if apperrors.IsStopProcessingError(err) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return err
	}

	path := recommend.BuildPath(cat, *query)
	RenderPath(out, path)

	rationale := ""
	if params.Rationale && !path.Empty() {
		if config.OpenAIAPIKey == "" {
			slog.Warn("Skipping rationale, no OpenAI API key configured")
		} else {
			client := newLibrarian(config.OpenAIAPIKey)
			request := fmt.Sprintf("a %s %s path about %s", query.Level, query.Depth, query.Category)
			rationale = client.Rationale(context.Background(), request, path.Books)
			if rationale != "" {
				fmt.Fprintf(out, "\nWhy this path?\n%s\n", rationale)
			}
		}
	}

	if err := writeExports(path, rationale, params); err != nil {
		return err
	}

	if !path.Empty() {
		stats.Record(viper.GetString("stats.file"), len(path.Books))
		recordHistory(path)
	}

	return nil
}

func loadCatalog(params Params) (*catalog.Catalog, error) {
	src := catalog.Source{
		CSVPath:    params.CSVPath,
		SQLitePath: params.SQLitePath,
		Table:      params.Table,
	}
	if src.CSVPath == "" && src.SQLitePath == "" {
		src.CSVPath = viper.GetString("catalog.csvfile")
		src.SQLitePath = viper.GetString("catalog.dbfile")
	}
	return catalog.Load(src)
}

func resolveQuery(cat *catalog.Catalog, params Params) (*recommend.Query, error) {
	if params.Interactive {
		result, err := selectQuery(cat.Categories())
		if err != nil {
			return nil, err
		}
		if result.Action != tui.ActionSelected {
			return nil, apperrors.NewStopProcessingError("interactive selection cancelled")
		}
		return result.Query, nil
	}

	query, err := recommend.NewQuery(params.Category, params.Subcategory, params.Level, params.Style, params.Depth)
	if err != nil {
		return nil, err
	}
	return &query, nil
}

// RenderPath prints a generated path as a numbered list. Shared with the
// chat command so both surfaces look the same.
func RenderPath(w io.Writer, path recommend.Path) {
	if path.Empty() {
		fmt.Fprintln(w, "No books in the catalog match this request. Try a broader level or a different subcategory.")
		fmt.Fprintf(w, "\nHint: %s\n", path.Hint)
		return
	}

	fmt.Fprintf(w, "Your %s path for %s (%s):\n\n", path.Query.Depth, path.Query.Category, path.Query.Level)
	for i, book := range path.Books {
		fmt.Fprintf(w, "  %d. %s by %s (difficulty %d/5)\n", i+1, book.Title, book.Author, book.Difficulty)
		if book.ShortDescription != "" {
			fmt.Fprintf(w, "     %s\n", book.ShortDescription)
		}
	}
	fmt.Fprintf(w, "\nHint: %s\n", path.Hint)
}

func writeExports(path recommend.Path, rationale string, params Params) error {
	overwrite := params.Overwrite || config.OverwriteFiles

	outputDir := params.OutputDir
	if outputDir == "" {
		outputDir = viper.GetString("MarkdownOutputDir")
	}

	coverPaths := downloadCovers(path, outputDir)

	filePath, _, err := export.WriteMarkdown(path, export.MarkdownOptions{
		Directory: outputDir,
		Rationale: rationale,
		Covers:    coverPaths,
		Overwrite: overwrite,
	})
	if err != nil {
		return err
	}
	slog.Info("Wrote markdown note", "file", filePath)

	if params.WriteJSON {
		jsonPath := params.JSONOutput
		if jsonPath == "" {
			jsonPath = filepath.Join(viper.GetString("JSONOutputDir"), "path.json")
		}
		if _, err := export.WriteJSON(path, rationale, jsonPath, overwrite); err != nil {
			return err
		}
		slog.Info("Wrote JSON export", "file", jsonPath)
	}

	if params.WritePDF {
		pdfPath := params.PDFOutput
		if pdfPath == "" {
			pdfPath = filepath.Join(viper.GetString("PDFOutputDir"), "path.pdf")
		}
		if _, err := export.WritePDF(path, rationale, pdfPath, overwrite); err != nil {
			return err
		}
		slog.Info("Wrote PDF report", "file", pdfPath)
	}

	return nil
}

// downloadCovers fetches cover thumbnails for each book on the path.
// Failures only cost the embed, never the export.
func downloadCovers(path recommend.Path, outputDir string) map[int]string {
	if !config.DownloadCovers || path.Empty() {
		return nil
	}

	coverPaths := make(map[int]string)
	for _, book := range path.Books {
		coverURL, err := fetchCoverURL(context.Background(), book.Title, book.Author)
		if err != nil {
			slog.Warn("Cover lookup failed", "title", book.Title, "error", err)
			continue
		}
		if coverURL == "" {
			continue
		}

		result, err := fileutil.DownloadCover(fileutil.CoverDownloadOptions{
			URL:       coverURL,
			OutputDir: outputDir,
			Filename:  fileutil.BuildCoverFilename(book.Title),
		})
		if err != nil {
			slog.Warn("Cover download failed", "title", book.Title, "error", err)
			continue
		}
		if result != nil {
			coverPaths[book.ID] = result.RelativePath
		}
	}
	return coverPaths
}

func recordHistory(path recommend.Path) {
	if !viper.GetBool("datasette.enabled") {
		return
	}

	var store datastore.Store
	if remote := viper.GetString("datasette.remote"); remote != "" {
		store = datastore.NewDatasetteClient(remote, viper.GetString("datasette.token"))
	} else {
		store = datastore.NewSQLiteStore(viper.GetString("datasette.dbfile"))
	}

	if err := store.Connect(); err != nil {
		slog.Warn("Failed to connect to history store", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := datastore.RecordPath(store, path); err != nil {
		slog.Warn("Failed to record path history", "error", err)
	}
}
