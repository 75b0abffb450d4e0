package cmd

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recommendcmd "github.com/halchemy/bookpath/cmd/recommend"
	"github.com/halchemy/bookpath/internal/config"
)

func resetCmdState(t *testing.T) {
	origOverwrite := config.OverwriteFiles
	origDownload := config.DownloadCovers

	t.Cleanup(func() {
		config.OverwriteFiles = origOverwrite
		config.DownloadCovers = origDownload
		viper.Reset()
	})

	viper.Reset()
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"bookpath"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("bookpath"),
		kong.Description("A book learning-path recommender for the Halchemy Library."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		Overwrite:      true,
		DownloadCovers: true,
		History:        false,
		HistoryDB:      "/tmp/bookpath.db",
		CacheDBFile:    "/tmp/cache.db",
		CacheTTL:       "12h",
	}

	updateGlobalConfig(cli)

	assert.True(t, config.OverwriteFiles)
	assert.True(t, config.DownloadCovers)
	assert.False(t, viper.GetBool("datasette.enabled"))
	assert.Equal(t, "/tmp/bookpath.db", viper.GetString("datasette.dbfile"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
}

func TestRecommendCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "recommend", "-c", "coding", "--subcategory", "python", "-l", "intermediate", "-d", "deep", "--json", "--pdf")

	assert.Equal(t, "coding", cli.Recommend.Category)
	assert.Equal(t, "python", cli.Recommend.Subcategory)
	assert.Equal(t, "intermediate", cli.Recommend.Level)
	assert.Equal(t, "deep", cli.Recommend.Depth)
	assert.True(t, cli.Recommend.JSON)
	assert.True(t, cli.Recommend.PDF)
	assert.False(t, cli.Recommend.Interactive)
}

func TestRecommendRequiresCategory(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "recommend")
	updateGlobalConfig(cli)

	err := ctx.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category is required")
}

func TestRecommendDelegatesToRunner(t *testing.T) {
	resetCmdState(t)
	t.Cleanup(func() { runRecommend = recommendcmd.RunWithParams })

	var got recommendcmd.Params
	runRecommend = func(params recommendcmd.Params) error {
		got = params
		return nil
	}

	cli, ctx := parseCLI(t, "recommend", "-c", "habits", "-f", "books.csv", "--rationale")
	updateGlobalConfig(cli)

	require.NoError(t, ctx.Run())
	assert.Equal(t, "habits", got.Category)
	assert.Equal(t, "books.csv", got.CSVPath)
	assert.Equal(t, "beginner", got.Level)
	assert.Equal(t, "short", got.Depth)
	assert.True(t, got.Rationale)
}

func TestChatRequiresAPIKey(t *testing.T) {
	resetCmdState(t)

	origKey := config.OpenAIAPIKey
	config.OpenAIAPIKey = ""
	t.Cleanup(func() { config.OpenAIAPIKey = origKey })

	cli, ctx := parseCLI(t, "chat")
	updateGlobalConfig(cli)

	err := ctx.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API key")
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "recommend", "-c", "habits")

	assert.False(t, cli.Overwrite, "Overwrite should default to false")
	assert.False(t, cli.DownloadCovers, "DownloadCovers should default to false")
	assert.True(t, cli.History, "History should default to true")
	assert.Equal(t, "./bookpath.db", cli.HistoryDB)
	assert.Equal(t, "./cache.db", cli.CacheDBFile)
	assert.Equal(t, "720h", cli.CacheTTL)
	assert.Equal(t, "beginner", cli.Recommend.Level)
	assert.Equal(t, "short", cli.Recommend.Depth)
	assert.Equal(t, "books", cli.Recommend.Table)
}

func TestCacheInvalidateParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "cache", "invalidate", "googlebooks")
	assert.Equal(t, "googlebooks", cli.Cache.Invalidate.Source)
}
