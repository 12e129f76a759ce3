// Package ingest reads the heterogeneous report inputs (CSV tables, Jira and
// Slack JSON exports, plain-text notes, XLSX spreadsheets) and renders each
// source into a prompt-ready text section.
package ingest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/debug"
)

// Row is one record of a tabular source, keyed by column header.
type Row map[string]string

// Table holds a tabular source with its original column order.
type Table struct {
	Headers []string
	Rows    []Row
}

// Ingestor reads one data source and formats it for the LLM prompt.
type Ingestor interface {
	SourceName() string
	FormatForPrompt() (string, error)
}

// displayNames maps source keys to the headings used in prompt sections.
var displayNames = map[string]string{
	"meeting_notes": "Meeting Notes",
	"jira":          "Jira",
	"slack":         "Slack",
	"wrike":         "Wrike",
	"gmail":         "Gmail",
	"hubspot":       "HubSpot",
	"confluence":    "Confluence",
	"calendar":      "Calendar",
	"risk_register": "Risk Register",
	"stakeholders":  "Stakeholders",
}

// DisplayName returns the heading for a source key.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// For selects an ingestor for the given source key and config, by source
// key first and file extension second. Unknown types fall back to CSV.
func For(key string, src config.SourceConfig) Ingestor {
	name := DisplayName(key)
	ext := strings.ToLower(filepath.Ext(src.Path))

	switch {
	case key == "jira" && ext == ".json":
		return NewJira(src.Path)
	case key == "slack" && ext == ".json":
		return NewSlack(src.Path)
	case key == "meeting_notes" || ext == ".txt":
		return NewNotes(src.Path)
	case ext == ".xlsx":
		return NewXLSX(src.Path, name)
	default:
		return NewCSV(src.Path, name)
	}
}

const sectionSeparator = "\n\n" + "================================================================================" + "\n\n"

// All ingests every enabled source and concatenates the formatted sections.
// Per-source failures are logged and skipped; zero successful sources is an
// error. Sources are processed in sorted key order for deterministic output.
func All(sources map[string]config.SourceConfig) (string, error) {
	keys := make([]string, 0, len(sources))
	for key := range sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sections []string
	for _, key := range keys {
		src := sources[key]
		if !src.Enabled {
			continue
		}

		text, err := For(key, src).FormatForPrompt()
		if err != nil {
			debug.PrintNormal("  ✗ %s failed: %v\n", DisplayName(key), err)
			continue
		}
		debug.PrintNormal("  ✓ %s\n", DisplayName(key))
		sections = append(sections, text)
	}

	if len(sections) == 0 {
		return "", fmt.Errorf("no data sources were successfully ingested")
	}
	return strings.Join(sections, sectionSeparator), nil
}
