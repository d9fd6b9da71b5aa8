package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vstratful/openrouter-launcher/internal/api"
	"github.com/vstratful/openrouter-launcher/internal/config"
	"github.com/vstratful/openrouter-launcher/internal/logging"
	"github.com/vstratful/openrouter-launcher/internal/markdown"
	"github.com/vstratful/openrouter-launcher/internal/tui"
)

// asker answers a single query on a writer.
type asker struct {
	client   api.Client
	provider string
	model    string
	system   string
	dark     bool
	maxDepth int
	limit    int
	out      io.Writer
}

// stream renders the answer chunk by chunk as it arrives.
func (a asker) stream(ctx context.Context, query string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultStreamTimeout)
	defer cancel()

	entry := config.NewHistoryEntry(a.provider, a.model, query)
	log := logging.Logger.WithFields(logrus.Fields{"id": entry.ID, "model": a.model})
	log.Debug("one-shot stream started")

	reader, err := a.client.ChatStream(ctx, api.NewQuery(a.model, a.system, query))
	if err != nil {
		return err
	}
	defer reader.Close()

	sink := tui.NewTermSink(a.out)
	opts := []markdown.Option{markdown.WithDark(a.dark)}
	if a.maxDepth > 0 {
		opts = append(opts, markdown.WithMaxDepth(a.maxDepth))
	}
	r := markdown.New(sink, opts...)

	var answer []byte
	start := time.Now()
	for {
		chunk, err := reader.Next()
		if err != nil {
			r.Flush()
			fmt.Fprintln(a.out)
			if errors.Is(ctx.Err(), context.Canceled) {
				log.Debug("one-shot stream interrupted")
				return nil
			}
			log.WithError(err).Warn("one-shot stream failed")
			return err
		}
		if chunk == nil || chunk.Done {
			break
		}
		if chunk.Content != "" {
			r.Append(chunk.Content)
			answer = append(answer, chunk.Content...)
		}
	}
	r.Flush()
	fmt.Fprintln(a.out)

	if err := sink.Err(); err != nil {
		return fmt.Errorf("failed to write answer: %w", err)
	}

	log.WithFields(logrus.Fields{
		"bytes":    len(answer),
		"duration": time.Since(start).String(),
	}).Debug("one-shot stream finished")

	return a.save(entry, string(answer))
}

// whole waits for the complete answer and renders it with glamour.
func (a asker) whole(ctx context.Context, query string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultStreamTimeout)
	defer cancel()

	entry := config.NewHistoryEntry(a.provider, a.model, query)
	resp, err := a.client.Chat(ctx, api.NewQuery(a.model, a.system, query))
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return &api.APIError{Message: resp.Error.Message}
	}

	answer := resp.Content()
	if err := printDocument(a.out, answer, a.dark); err != nil {
		return err
	}
	return a.save(entry, answer)
}

func (a asker) save(entry *config.HistoryEntry, answer string) error {
	if answer == "" {
		return nil
	}
	entry.Response = answer
	if err := entry.Save(); err != nil {
		logging.Logger.WithError(err).Warn("failed to save history")
		return nil
	}
	if a.limit > 0 {
		if _, err := config.PruneHistory(a.limit); err != nil {
			logging.Logger.WithError(err).Warn("failed to prune history")
		}
	}
	return nil
}

// printDocument renders markdown with glamour when out is a terminal and
// writes it verbatim otherwise.
func printDocument(out io.Writer, content string, dark bool) error {
	if !tui.IsTerminal(out) {
		_, err := fmt.Fprintln(out, content)
		return err
	}

	doc, err := tui.NewDocument(tui.TerminalWidth(out, config.DefaultTerminalWidth), dark)
	if err != nil {
		return err
	}
	rendered, err := doc.Render(content)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}
