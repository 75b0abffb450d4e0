package recommend

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/halchemy/bookpath/internal/config"
	"github.com/halchemy/bookpath/internal/covers"
	"github.com/halchemy/bookpath/internal/recommend"
	"github.com/halchemy/bookpath/internal/testutil"
	"github.com/halchemy/bookpath/internal/tui"
)

const catalogCSV = `id,title,author,category,subcategory,difficulty,readability,style,learning_type,is_beginner_friendly,is_intermediate,is_advanced,short_description,store_url
1,Atomic Habits,James Clear,habits,general,1,5,tactical/how-to,behavioral-skill,true,false,false,Small changes that compound.,https://example.com/1
2,Tiny Habits,BJ Fogg,habits,general,2,4,tactical/how-to,behavioral-skill,true,true,false,Start smaller than you think.,https://example.com/2
3,Deep Habits,Somebody Wise,habits,general,4,2,academic,behavioral-skill,false,false,true,For the already converted.,https://example.com/3
`

func writeCatalog(t *testing.T, env *testutil.TestEnv) string {
	t.Helper()
	env.WriteFileString("books.csv", catalogCSV)
	return env.Path("books.csv")
}

func baseParams(t *testing.T, env *testutil.TestEnv) Params {
	t.Helper()

	testutil.SetViperValue(t, "stats.file", env.Path("data", "stats.json"))
	testutil.SetViperValue(t, "datasette.enabled", false)

	return Params{
		CSVPath:   writeCatalog(t, env),
		Category:  "habits",
		Level:     "beginner",
		Depth:     "short",
		OutputDir: env.Path("markdown"),
		Overwrite: true,
	}
}

func TestRunWithParams(t *testing.T) {
	env := testutil.NewTestEnv(t)
	var out bytes.Buffer

	params := baseParams(t, env)
	params.Out = &out

	err := RunWithParams(params)
	assert.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "1. Atomic Habits by James Clear")
	assert.Contains(t, rendered, "2. Tiny Habits by BJ Fogg")
	assert.NotContains(t, rendered, "Deep Habits")
	assert.Contains(t, rendered, "Hint:")

	env.RequireFileExists("markdown/Habits Learning Path (beginner, short).md")
	env.RequireFileExists("data/stats.json")
}

func TestRunWithParamsJSONAndPDF(t *testing.T) {
	env := testutil.NewTestEnv(t)
	var out bytes.Buffer

	params := baseParams(t, env)
	params.Out = &out
	params.WriteJSON = true
	params.JSONOutput = env.Path("exports", "path.json")
	params.WritePDF = true
	params.PDFOutput = env.Path("exports", "path.pdf")

	err := RunWithParams(params)
	assert.NoError(t, err)

	env.RequireFileExists("exports/path.json")
	env.RequireFileExists("exports/path.pdf")
}

func TestRunWithParamsInvalidQuery(t *testing.T) {
	env := testutil.NewTestEnv(t)

	params := baseParams(t, env)
	params.Level = "expert"

	err := RunWithParams(params)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized level")
}

func TestRunWithParamsMissingCatalog(t *testing.T) {
	env := testutil.NewTestEnv(t)

	params := baseParams(t, env)
	params.CSVPath = env.Path("nope.csv")

	err := RunWithParams(params)
	assert.Error(t, err)
}

func TestRunWithParamsInteractive(t *testing.T) {
	env := testutil.NewTestEnv(t)
	var out bytes.Buffer

	t.Cleanup(func() { selectQuery = tui.SelectQuery })
	selectQuery = func(categories []string) (tui.QueryResult, error) {
		assert.Equal(t, []string{"habits"}, categories)
		query, err := recommend.NewQuery("habits", "", "all", "", "deep")
		assert.NoError(t, err)
		return tui.QueryResult{Action: tui.ActionSelected, Query: &query}, nil
	}

	params := baseParams(t, env)
	params.Interactive = true
	params.Category = ""
	params.Out = &out

	err := RunWithParams(params)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Deep Habits")
}

func TestRunWithParamsInteractiveCancelled(t *testing.T) {
	env := testutil.NewTestEnv(t)
	var out bytes.Buffer

	t.Cleanup(func() { selectQuery = tui.SelectQuery })
	selectQuery = func(categories []string) (tui.QueryResult, error) {
		return tui.QueryResult{Action: tui.ActionStopped}, nil
	}

	params := baseParams(t, env)
	params.Interactive = true
	params.Out = &out

	err := RunWithParams(params)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Cancelled.")
	assert.False(t, env.FileExists("data/stats.json"))
}

func TestRunWithParamsStyleStaysSoft(t *testing.T) {
	env := testutil.NewTestEnv(t)
	var out bytes.Buffer

	params := baseParams(t, env)
	params.Category = "habits"
	params.Subcategory = ""
	params.Level = "advanced"
	params.Style = "story-driven"
	params.Out = &out

	// Style is soft, level is hard: only the advanced book survives
	err := RunWithParams(params)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Deep Habits")
}

func TestDownloadCoversDisabled(t *testing.T) {
	origDownload := config.DownloadCovers
	config.DownloadCovers = false
	t.Cleanup(func() { config.DownloadCovers = origDownload })

	paths := downloadCovers(recommend.Path{}, "out")
	assert.Zero(t, len(paths))
}

func TestDownloadCoversFetchesAndEmbeds(t *testing.T) {
	env := testutil.NewTestEnv(t)

	origDownload := config.DownloadCovers
	config.DownloadCovers = true
	t.Cleanup(func() {
		config.DownloadCovers = origDownload
		fetchCoverURL = covers.FetchCoverURL
	})

	fetchCoverURL = func(ctx context.Context, title, author string) (string, error) {
		if strings.Contains(title, "Atomic") {
			return "", nil // no cover for this one
		}
		return "http://127.0.0.1:1/cover.jpg", nil // unreachable, download fails
	}

	cat, err := loadCatalog(Params{CSVPath: writeCatalog(t, env)})
	assert.NoError(t, err)

	query, err := recommend.NewQuery("habits", "", "all", "", "deep")
	assert.NoError(t, err)
	path := recommend.BuildPath(cat, query)

	// Lookup misses and download failures both degrade to no embed
	paths := downloadCovers(path, env.Path("markdown"))
	assert.Zero(t, len(paths))
}
