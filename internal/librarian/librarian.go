// Package librarian drives the conversational interface. A chat model
// gathers the user's preferences and signals, via a tool call, when it has
// enough to query the catalog. The model never picks books itself.
package librarian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"

	apperrors "github.com/halchemy/bookpath/internal/errors"
	"github.com/halchemy/bookpath/internal/recommend"
)

const systemPrompt = `You are the Halchemy Library Librarian. Your goal is to help users learn new skills by recommending a "book path" (a sequence of books).

You have access to a tool called ` + "`query_library`" + `.
To use it, you must first understand the user's:
1. **Topic** (Must map to: Habits, Coding, History, Cooking, Productivity, Business).
2. **Current Level** (Beginner, Intermediate, Advanced).
3. **Style Preference** (Story-driven/Narrative vs. Tactical/How-to).
4. **Depth** (Short path vs. Deep dive).

**Instructions:**
- **Don't hallucinate books.** Selection is handled by the tool. Your job is just to gather parameters.
- Be helpful and concise.
- Ask clarifying questions if the user is vague (e.g., if they say "I want to learn", ask "What subject?").
- If the user asks for a topic NOT in your list (like "Gardening"), apologize and say you only have the supported categories for now.
- Once you have enough info, CALL the ` + "`query_library`" + ` function. Do not just list book titles yourself.`

// queryLibrarySchema is the JSON schema for the query_library tool.
var queryLibrarySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"category": {
			"type": "string",
			"enum": ["habits", "coding", "history", "cooking", "productivity", "business"],
			"description": "The main topic category."
		},
		"subcategory": {
			"type": "string",
			"description": "Specific niche (e.g., 'python', 'WWII', 'japanese-cooking'). Optional."
		},
		"level": {
			"type": "string",
			"enum": ["beginner", "intermediate", "advanced"],
			"description": "The user's current skill level."
		},
		"style": {
			"type": "string",
			"enum": ["story-driven", "tactical/how-to", "academic", "reference"],
			"description": "The preferred writing style of the books."
		},
		"depth": {
			"type": "string",
			"enum": ["short", "deep"],
			"description": "Length of the path: 'short' (3 books) or 'deep' (5-7 books)."
		}
	},
	"required": ["category", "level"]
}`)

var queryLibraryTool = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        "query_library",
		Description: "Search the Halchemy Library for a curated reading path based on user preferences. Call this ONLY when you have identified the topic, skill level, and style preferences.",
		Parameters:  queryLibrarySchema,
	},
}

// Client wraps the chat model used for the librarian conversation.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

// New creates a librarian client for the given API key. Model and
// temperature come from configuration.
func New(apiKey string) *Client {
	return NewWithConfig(openai.DefaultConfig(apiKey))
}

// NewWithConfig creates a librarian client from a full client config.
// Used by tests to point at a local server.
func NewWithConfig(cfg openai.ClientConfig) *Client {
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       viper.GetString("openai.model"),
		temperature: float32(viper.GetFloat64("openai.temperature")),
	}
}

// Reply is one librarian turn: either plain text to show the user, or a
// validated query to run against the catalog.
type Reply struct {
	Content string
	Query   *recommend.Query
}

// Respond sends the conversation so far and returns the model's next turn.
// The system prompt is always prepended; callers keep only user and
// assistant messages in history.
func (c *Client) Respond(ctx context.Context, history []openai.ChatCompletionMessage) (Reply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	messages = append(messages, history...)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Tools:       []openai.Tool{queryLibraryTool},
		Temperature: c.temperature,
	})
	if err != nil {
		return Reply{}, wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return Reply{}, fmt.Errorf("chat completion returned no choices")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return Reply{Content: msg.Content}, nil
	}

	// Only the first tool call matters; the schema defines a single tool
	call := msg.ToolCalls[0]
	if call.Function.Name != "query_library" {
		return Reply{}, fmt.Errorf("unexpected tool call %q", call.Function.Name)
	}

	query, err := decodeQueryArgs(call.Function.Arguments)
	if err != nil {
		return Reply{}, err
	}

	slog.Debug("Librarian requested a library query",
		"category", query.Category, "level", query.Level, "depth", query.Depth)
	return Reply{Query: &query}, nil
}

func decodeQueryArgs(arguments string) (recommend.Query, error) {
	var args struct {
		Category    string `json:"category"`
		Subcategory string `json:"subcategory"`
		Level       string `json:"level"`
		Style       string `json:"style"`
		Depth       string `json:"depth"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return recommend.Query{}, fmt.Errorf("failed to decode tool arguments: %w", err)
	}

	query, err := recommend.NewQuery(args.Category, args.Subcategory, args.Level, args.Style, args.Depth)
	if err != nil {
		return recommend.Query{}, fmt.Errorf("invalid tool arguments: %w", err)
	}
	return query, nil
}

// wrapAPIError surfaces rate limiting as a typed error so the chat loop
// can tell the user to slow down instead of aborting.
func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return apperrors.NewRateLimitError("chat model rate limit exceeded")
	}
	return fmt.Errorf("chat completion failed: %w", err)
}
