// Package report writes the generated summary to its output formats:
// Markdown, and an executive HTML page assembled from the converted
// summary, dashboard analytics, and chart images.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
)

// Source attributions for the report footer.
const (
	scenarioSources = "Jira, Wrike, Slack, Gmail, HubSpot, Confluence, Calendar, Risk Register"
	defaultSources  = "Meeting Notes, Jira, Slack"
)

const dateLayout = "2006-01-02"

// resolveOutput expands the filename pattern into a full output path,
// creating the directory.
func resolveOutput(f config.FormatConfig, now time.Time) (string, error) {
	if err := os.MkdirAll(f.Path, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := strings.ReplaceAll(f.FilenamePattern, "{date}", now.Format(dateLayout))
	return filepath.Join(f.Path, name), nil
}

// WriteMarkdown writes the summary as a Markdown report. Returns the file
// path, or "" when the markdown format is disabled.
func WriteMarkdown(cfg *config.Config, sc *config.Scenario, summary string, now time.Time) (string, error) {
	f := cfg.Format(sc, "markdown")
	if !f.IsEnabled(true) {
		return "", nil
	}

	title := cfg.Report.Title
	sources := defaultSources
	if sc != nil {
		if sc.Title != "" {
			title = sc.Title
		}
		sources = scenarioSources
	}

	path, err := resolveOutput(f, now)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", title, now.Format(dateLayout))
	b.WriteString(summary)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "*Generated automatically by Status Summarizer Bot | %s*\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "*Sources: %s*\n", sources)

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("write markdown report: %w", err)
	}
	return path, nil
}
