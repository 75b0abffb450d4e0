package librarian

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/halchemy/bookpath/internal/cache"
	"github.com/halchemy/bookpath/internal/catalog"
)

// fallbackRationale is shown when the model cannot be reached. The path
// itself is always valid; only the explanation degrades.
const fallbackRationale = "These books are ordered from the most approachable to the most demanding, so each one builds on the last."

const rationalePrompt = `You are the Halchemy Library Librarian. The user asked: %q

The library selected this reading path, in order:
%s

In 2-3 sentences, explain why this sequence works as a learning progression. Do not suggest other books.`

// Rationale asks the model to explain why the selected sequence fits the
// user's request. Failures degrade to a generic explanation and are never
// returned as errors; results are cached per request and book list.
func (c *Client) Rationale(ctx context.Context, userRequest string, books []catalog.BookRecord) string {
	if len(books) == 0 {
		return ""
	}

	key := rationaleCacheKey(userRequest, books)
	text, cached, err := cache.GetOrFetch(cache.RationaleCacheTable, key, func() (string, error) {
		return c.fetchRationale(ctx, userRequest, books)
	})
	if err != nil {
		slog.Warn("Rationale generation failed, using fallback", "error", err)
		return fallbackRationale
	}
	if cached {
		slog.Debug("Using cached rationale", "key", key)
	}
	return text
}

func (c *Client) fetchRationale(ctx context.Context, userRequest string, books []catalog.BookRecord) (string, error) {
	var list strings.Builder
	for i, book := range books {
		fmt.Fprintf(&list, "%d. %s by %s\n", i+1, book.Title, book.Author)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(rationalePrompt, userRequest, list.String()),
			},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func rationaleCacheKey(userRequest string, books []catalog.BookRecord) string {
	ids := make([]string, len(books))
	for i, book := range books {
		ids[i] = fmt.Sprintf("%d", book.ID)
	}
	return strings.ToLower(strings.TrimSpace(userRequest)) + "|" + strings.Join(ids, ",")
}
