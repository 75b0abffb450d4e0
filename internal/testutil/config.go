package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/halchemy/bookpath/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles    bool
	DownloadCovers    bool
	OpenAIAPIKey      string
	GoogleBooksAPIKey string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles:    config.OverwriteFiles,
		DownloadCovers:    config.DownloadCovers,
		OpenAIAPIKey:      config.OpenAIAPIKey,
		GoogleBooksAPIKey: config.GoogleBooksAPIKey,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.DownloadCovers = state.DownloadCovers
	config.OpenAIAPIKey = state.OpenAIAPIKey
	config.GoogleBooksAPIKey = state.GoogleBooksAPIKey
}

// SetTestConfig sets up a test configuration with common defaults and
// restores the previous state when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.OverwriteFiles = true
	config.DownloadCovers = false
	config.OpenAIAPIKey = "test-openai-key"
	config.GoogleBooksAPIKey = "test-google-key"

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupTestCache points the API cache at a database inside the test
// environment so tests never touch a real cache file.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("cache", "test-cache.db")
	env.WriteFile("cache/.keep", nil)

	SetViperValue(t, "cache.dbfile", dbPath)
	SetViperValue(t, "cache.ttl", "24h")

	return dbPath
}
