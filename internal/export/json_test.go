package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halchemy/bookpath/internal/testutil"
)

func TestWriteJSON(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("path.json")

	written, err := WriteJSON(samplePath(), "A short explanation.", filePath, false)
	require.NoError(t, err)
	assert.True(t, written)

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(env.ReadFileString("path.json")), &doc))

	assert.Equal(t, "habits", doc.Path.Query.Category)
	assert.Len(t, doc.Path.Books, 2)
	assert.Equal(t, "Atomic Habits", doc.Path.Books[0].Title)
	assert.Equal(t, "A short explanation.", doc.Rationale)
	assert.NotEmpty(t, doc.GeneratedAt)
}

func TestWriteJSONSkipsExisting(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("path.json")

	written, err := WriteJSON(samplePath(), "", filePath, false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteJSON(samplePath(), "", filePath, false)
	require.NoError(t, err)
	assert.False(t, written)
}
