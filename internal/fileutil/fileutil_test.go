package fileutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halchemy/bookpath/internal/testutil"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain title",
			input:    "Atomic Habits",
			expected: "Atomic Habits",
		},
		{
			name:     "colon",
			input:    "Habits: A Field Guide",
			expected: "Habits - A Field Guide",
		},
		{
			name:     "slashes",
			input:    "TCP/IP Illustrated",
			expected: "TCP-IP Illustrated",
		},
		{
			name:     "backslash",
			input:    `Paths\Trails`,
			expected: "Paths-Trails",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestGetMarkdownFilePath(t *testing.T) {
	path := GetMarkdownFilePath("Deep Work: Rules", "/tmp/out")
	assert.Equal(t, "/tmp/out/Deep Work - Rules.md", path)
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	target := env.Path("out", "file.txt")

	written, err := WriteFileWithOverwrite(target, []byte("first"), 0644, false)
	require.NoError(t, err)
	assert.True(t, written)

	// Existing file is skipped without overwrite
	written, err = WriteFileWithOverwrite(target, []byte("second"), 0644, false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "first", env.ReadFileString("out/file.txt"))

	// Overwrite replaces the content
	written, err = WriteFileWithOverwrite(target, []byte("second"), 0644, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "second", env.ReadFileString("out/file.txt"))
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	target := env.Path("json", "path.json")

	payload := map[string]any{"category": "habits", "books": 3}
	written, err := WriteJSONFile(payload, target, false)
	require.NoError(t, err)
	assert.True(t, written)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.ReadFileString("json/path.json")), &decoded))
	assert.Equal(t, "habits", decoded["category"])
	assert.Equal(t, float64(3), decoded["books"])
}
