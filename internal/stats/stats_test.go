package stats

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halchemy/bookpath/internal/testutil"
)

func TestLoadMissingFile(t *testing.T) {
	env := testutil.NewTestEnv(t)

	s := Load(env.Path("nope.json"))
	assert.Equal(t, 0, s.PathsGenerated)
	assert.Equal(t, 0, s.BooksRecommended)
}

func TestLoadCorruptFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("stats.json", "{not json at all")

	s := Load(env.Path("stats.json"))
	assert.Equal(t, Stats{}, s)
}

func TestRecordAccumulates(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("stats.json")

	s := Record(path, 3)
	assert.Equal(t, 1, s.PathsGenerated)
	assert.Equal(t, 3, s.BooksRecommended)

	s = Record(path, 7)
	assert.Equal(t, 2, s.PathsGenerated)
	assert.Equal(t, 10, s.BooksRecommended)

	// Counters survive a fresh load.
	loaded := Load(path)
	assert.Equal(t, s, loaded)
}

func TestRecordCreatesParentDir(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := filepath.Join(env.RootDir(), "data", "stats.json")

	s := Record(path, 2)
	assert.Equal(t, 1, s.PathsGenerated)
	env.RequireFileExists(filepath.Join("data", "stats.json"))
}

func TestRecordRecoversFromCorruptFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("stats.json", "garbage")

	s := Record(env.Path("stats.json"), 5)
	assert.Equal(t, 1, s.PathsGenerated)
	assert.Equal(t, 5, s.BooksRecommended)
}
