// Package chat implements the librarian REPL. The model gathers the
// user's preferences over a few turns and the catalog does the picking.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"

	recommendcmd "github.com/halchemy/bookpath/cmd/recommend"
	"github.com/halchemy/bookpath/internal/catalog"
	apperrors "github.com/halchemy/bookpath/internal/errors"
	"github.com/halchemy/bookpath/internal/librarian"
	"github.com/halchemy/bookpath/internal/recommend"
	"github.com/halchemy/bookpath/internal/stats"
)

const greeting = "Welcome to the Halchemy Library. Tell me what you'd like to learn, or /quit to leave."

// Params carries the chat command's dependencies. Catalog and Client are
// resolved by the caller so tests can inject both.
type Params struct {
	Catalog *catalog.Catalog
	Client  *librarian.Client
	In      io.Reader
	Out     io.Writer
}

// Run drives the REPL until the user quits or input ends.
func Run(params Params) error {
	in := params.In
	if in == nil {
		in = os.Stdin
	}
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, greeting)

	var history []openai.ChatCompletionMessage
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(out, "\nGoodbye.")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			fmt.Fprintln(out, "Goodbye.")
			return nil
		}

		history = append(history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: line,
		})

		reply, err := params.Client.Respond(context.Background(), history)
		if err != nil {
			if apperrors.IsRateLimitError(err) {
				fmt.Fprintln(out, "The librarian is a little overwhelmed right now, give it a moment and try again.")
				// Drop the failed turn so a retry resends it cleanly
				history = history[:len(history)-1]
				continue
			}
			return err
		}

		if reply.Query == nil {
			fmt.Fprintln(out, reply.Content)
			history = append(history, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: reply.Content,
			})
			continue
		}

		path := recommend.BuildPath(params.Catalog, *reply.Query)
		recommendcmd.RenderPath(out, path)

		if !path.Empty() {
			rationale := params.Client.Rationale(context.Background(), line, path.Books)
			if rationale != "" {
				fmt.Fprintf(out, "\nWhy this path?\n%s\n", rationale)
			}
			stats.Record(viper.GetString("stats.file"), len(path.Books))
		}

		// Keep a text summary in history so the conversation stays coherent
		// without replaying the whole tool lifecycle
		summary := fmt.Sprintf("I've generated a %s reading path for %s (%s).",
			reply.Query.Depth, reply.Query.Category, reply.Query.Level)
		history = append(history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: summary,
		})
		slog.Debug("Recorded path turn", "category", reply.Query.Category)
	}
}
