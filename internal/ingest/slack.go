package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SlackExport is the shape of a Slack thread export file.
type SlackExport struct {
	Channels []SlackChannel `json:"channels"`
}

// SlackChannel groups the exported threads of one channel.
type SlackChannel struct {
	ChannelName string        `json:"channel_name"`
	Threads     []SlackThread `json:"threads"`
}

// SlackThread is a root message with its reactions and replies.
type SlackThread struct {
	Author    string          `json:"author"`
	Text      string          `json:"text"`
	ThreadTS  string          `json:"thread_ts"`
	Reactions []SlackReaction `json:"reactions"`
	Replies   []SlackReply    `json:"replies"`
}

// SlackReaction is an emoji reaction tally on a thread root.
type SlackReaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// SlackReply is one threaded reply.
type SlackReply struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// SlackIngestor reads a Slack JSON export.
type SlackIngestor struct {
	path string
}

func NewSlack(path string) *SlackIngestor { return &SlackIngestor{path: path} }

func (s *SlackIngestor) SourceName() string { return "Slack" }

// Ingest loads and parses the export file.
func (s *SlackIngestor) Ingest() (*SlackExport, error) {
	if s.path == "" {
		return nil, fmt.Errorf("slack ingestor requires a path in config")
	}

	data, err := os.ReadFile(s.path) // #nosec G304 - path comes from user config
	if err != nil {
		return nil, fmt.Errorf("slack: %w", err)
	}

	var export SlackExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("slack: parse export: %w", err)
	}
	return &export, nil
}

// FormatForPrompt renders channels and threads with reactions and replies.
func (s *SlackIngestor) FormatForPrompt() (string, error) {
	export, err := s.Ingest()
	if err != nil {
		return "", err
	}
	if len(export.Channels) == 0 {
		return "No Slack conversations available.\n", nil
	}

	var b strings.Builder
	b.WriteString("# SLACK CONVERSATIONS\n")

	for _, channel := range export.Channels {
		if len(channel.Threads) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s (%d discussions)\n\n", channel.ChannelName, len(channel.Threads))

		for _, thread := range channel.Threads {
			fmt.Fprintf(&b, "### @%s - %s\n", thread.Author, thread.ThreadTS)
			fmt.Fprintf(&b, "%s\n\n", thread.Text)

			if len(thread.Reactions) > 0 {
				parts := make([]string, 0, len(thread.Reactions))
				for _, r := range thread.Reactions {
					parts = append(parts, fmt.Sprintf(":%s: %d", r.Emoji, r.Count))
				}
				fmt.Fprintf(&b, "Reactions: %s\n\n", strings.Join(parts, ", "))
			}

			if len(thread.Replies) > 0 {
				b.WriteString("Thread replies:\n")
				for _, reply := range thread.Replies {
					fmt.Fprintf(&b, "  → %s: %s\n", reply.Author, reply.Text)
				}
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
