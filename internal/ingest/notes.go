package ingest

import (
	"fmt"
	"os"
)

// NotesIngestor reads plain-text meeting notes.
type NotesIngestor struct {
	path string
}

func NewNotes(path string) *NotesIngestor { return &NotesIngestor{path: path} }

func (n *NotesIngestor) SourceName() string { return "Meeting Notes" }

// Ingest returns the file content verbatim.
func (n *NotesIngestor) Ingest() (string, error) {
	if n.path == "" {
		return "", fmt.Errorf("notes ingestor requires a path in config")
	}

	data, err := os.ReadFile(n.path) // #nosec G304 - path comes from user config
	if err != nil {
		return "", fmt.Errorf("notes: %w", err)
	}
	return string(data), nil
}

func (n *NotesIngestor) FormatForPrompt() (string, error) {
	content, err := n.Ingest()
	if err != nil {
		return "", err
	}
	if content == "" {
		return "No meeting notes available.\n", nil
	}
	return fmt.Sprintf("# MEETING NOTES\n\n%s", content), nil
}
