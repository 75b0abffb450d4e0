package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halchemy/bookpath/internal/cache"
	"github.com/halchemy/bookpath/internal/catalog"
	"github.com/halchemy/bookpath/internal/librarian"
	"github.com/halchemy/bookpath/internal/testutil"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat := catalog.New([]catalog.BookRecord{
		{
			ID: 1, Title: "Atomic Habits", Author: "James Clear",
			Category: "habits", Difficulty: 1, Readability: 5,
			Style: "tactical/how-to", LearningType: catalog.BehavioralSkill,
			BeginnerFriendly: true,
		},
		{
			ID: 2, Title: "Tiny Habits", Author: "BJ Fogg",
			Category: "habits", Difficulty: 2, Readability: 4,
			Style: "tactical/how-to", LearningType: catalog.BehavioralSkill,
			BeginnerFriendly: true,
		},
	})
	require.NoError(t, catalog.Validate(cat))
	return cat
}

// scriptedClient serves a fixed sequence of chat completion responses.
func scriptedClient(t *testing.T, responses []map[string]any) *librarian.Client {
	t.Helper()

	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Less(t, call, len(responses), "more requests than scripted responses")
		msg := responses[call]
		call++

		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": msg, "finish_reason": "stop"}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return librarian.NewWithConfig(cfg)
}

func TestRunQuitImmediately(t *testing.T) {
	var out bytes.Buffer

	err := Run(Params{
		Catalog: testCatalog(t),
		Client:  scriptedClient(t, nil),
		In:      strings.NewReader("/quit\n"),
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestRunTextTurnThenQuit(t *testing.T) {
	var out bytes.Buffer

	client := scriptedClient(t, []map[string]any{
		{"role": "assistant", "content": "What subject would you like to learn?"},
	})

	err := Run(Params{
		Catalog: testCatalog(t),
		Client:  client,
		In:      strings.NewReader("I want to learn\n/quit\n"),
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "What subject would you like to learn?")
}

func TestRunToolCallRendersPath(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetupTestCache(t, env)
	require.NoError(t, cache.ResetGlobalCache())
	testutil.SetViperValue(t, "stats.file", env.Path("stats.json"))

	var out bytes.Buffer

	client := scriptedClient(t, []map[string]any{
		{
			"role": "assistant",
			"tool_calls": []map[string]any{{
				"id":   "call_1",
				"type": "function",
				"function": map[string]any{
					"name":      "query_library",
					"arguments": `{"category":"habits","level":"beginner","depth":"short"}`,
				},
			}},
		},
		// Rationale request
		{"role": "assistant", "content": "Because it builds up gently."},
	})

	err := Run(Params{
		Catalog: testCatalog(t),
		Client:  client,
		In:      strings.NewReader("help me build habits\n/quit\n"),
		Out:     &out,
	})
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "1. Atomic Habits by James Clear")
	assert.Contains(t, rendered, "2. Tiny Habits by BJ Fogg")
	assert.Contains(t, rendered, "Why this path?")
	assert.Contains(t, rendered, "Because it builds up gently.")
	env.RequireFileExists("stats.json")
}

func TestRunEndOfInput(t *testing.T) {
	var out bytes.Buffer

	err := Run(Params{
		Catalog: testCatalog(t),
		Client:  scriptedClient(t, nil),
		In:      strings.NewReader(""),
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye.")
}
