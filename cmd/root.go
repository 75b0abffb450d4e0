package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/halchemy/bookpath/cmd/chat"
	"github.com/halchemy/bookpath/cmd/check"
	recommendcmd "github.com/halchemy/bookpath/cmd/recommend"
	"github.com/halchemy/bookpath/internal/cache"
	"github.com/halchemy/bookpath/internal/catalog"
	"github.com/halchemy/bookpath/internal/config"
	"github.com/halchemy/bookpath/internal/librarian"
)

var (
	runRecommend = recommendcmd.RunWithParams
	runChat      = chat.Run
	runCheck     = check.Run
)

// CLI represents the complete command structure for the bookpath application
type CLI struct {
	// Global flags
	Overwrite      bool `help:"Overwrite existing export files"`
	DownloadCovers bool `help:"Download cover thumbnails for exported paths"`

	// History flags
	History       bool   `name:"history" help:"Record generated paths to the history store" default:"true"`
	HistoryDB     string `help:"Path to SQLite history database file" default:"./bookpath.db"`
	HistoryRemote string `help:"Datasette base URL for remote history (empty = local SQLite)"`
	HistoryToken  string `help:"API token for remote history"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Recommend RecommendCmd `cmd:"" help:"Generate a book learning path"`
	Chat      ChatCmd      `cmd:"" help:"Talk to the librarian to build a path"`
	Check     CheckCmd     `cmd:"" help:"Validate the book catalog"`
	Cache     CacheCmd     `cmd:"" help:"Manage the lookup cache"`
}

// RecommendCmd represents the recommend command
type RecommendCmd struct {
	Category    string `short:"c" help:"Topic category (required unless --interactive)"`
	Subcategory string `help:"Niche within the category (e.g., python, WWII)"`
	Level       string `short:"l" help:"Skill level: beginner, intermediate, advanced, all" default:"beginner"`
	Style       string `help:"Preferred style: story-driven, tactical/how-to, academic, reference"`
	Depth       string `short:"d" help:"Path depth: short (3 books) or deep (7 books)" default:"short"`
	Interactive bool   `short:"i" help:"Pick category, level, style and depth interactively"`

	CSVFile    string `short:"f" help:"Path to catalog CSV file"`
	SQLite     string `help:"Path to catalog SQLite database (overrides CSV)"`
	Table      string `help:"Catalog table name" default:"books"`
	Output     string `short:"o" help:"Directory for the markdown note"`
	JSON       bool   `help:"Write the path as JSON"`
	JSONOutput string `help:"Path to JSON output file (defaults to json/path.json)"`
	PDF        bool   `help:"Write the path as a PDF report"`
	PDFOutput  string `help:"Path to PDF output file (defaults to pdf/path.pdf)"`
	Rationale  bool   `help:"Ask the librarian to explain the sequence (needs OpenAI API key)"`
}

// ChatCmd represents the chat command
type ChatCmd struct {
	CSVFile string `short:"f" help:"Path to catalog CSV file"`
	SQLite  string `help:"Path to catalog SQLite database (overrides CSV)"`
	Table   string `help:"Catalog table name" default:"books"`
}

// CheckCmd represents the check command
type CheckCmd struct {
	CSVFile string `short:"f" help:"Path to catalog CSV file"`
	SQLite  string `help:"Path to catalog SQLite database (overrides CSV)"`
	Table   string `help:"Catalog table name" default:"books"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached lookups for a source"`
}

// Execute parses and runs the CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookpath"),
		kong.Description("A book learning-path recommender for the Halchemy Library."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("PDFOutputDir", "./pdf/")
	viper.SetDefault("OverwriteFiles", false)

	// Catalog defaults
	viper.SetDefault("catalog.csvfile", "./books.csv")

	// Stats defaults
	viper.SetDefault("stats.file", "./data/stats.json")

	// History defaults
	viper.SetDefault("datasette.enabled", true)
	viper.SetDefault("datasette.dbfile", "./bookpath.db")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// Librarian defaults
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.temperature", 0.7)

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("OpenAIAPIKey", "OPENAI_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("GoogleBooksAPIKey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetDownloadCovers(cli.DownloadCovers)

	viper.Set("datasette.enabled", cli.History)
	viper.Set("datasette.dbfile", cli.HistoryDB)
	viper.Set("datasette.remote", cli.HistoryRemote)
	viper.Set("datasette.token", cli.HistoryToken)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

// Run methods for each command

func (r *RecommendCmd) Run() error {
	if !r.Interactive && r.Category == "" {
		return fmt.Errorf("category is required (provide via --category or use --interactive)")
	}

	return runRecommend(recommendcmd.Params{
		CSVPath:     r.CSVFile,
		SQLitePath:  r.SQLite,
		Table:       r.Table,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Level:       r.Level,
		Style:       r.Style,
		Depth:       r.Depth,
		Interactive: r.Interactive,
		OutputDir:   r.Output,
		WriteJSON:   r.JSON,
		JSONOutput:  r.JSONOutput,
		WritePDF:    r.PDF,
		PDFOutput:   r.PDFOutput,
		Rationale:   r.Rationale,
	})
}

func (c *ChatCmd) Run() error {
	if config.OpenAIAPIKey == "" {
		return fmt.Errorf("chat requires an OpenAI API key (set OPENAI_API_KEY or OpenAIAPIKey in config)")
	}

	src := catalog.Source{CSVPath: c.CSVFile, SQLitePath: c.SQLite, Table: c.Table}
	if src.CSVPath == "" && src.SQLitePath == "" {
		src.CSVPath = viper.GetString("catalog.csvfile")
		src.SQLitePath = viper.GetString("catalog.dbfile")
	}
	cat, err := catalog.Load(src)
	if err != nil {
		return err
	}

	return runChat(chat.Params{
		Catalog: cat,
		Client:  librarian.New(config.OpenAIAPIKey),
	})
}

func (c *CheckCmd) Run() error {
	return runCheck(check.Params{
		CSVPath:    c.CSVFile,
		SQLitePath: c.SQLite,
		Table:      c.Table,
	})
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}
