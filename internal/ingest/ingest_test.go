package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVIngest(t *testing.T) {
	path := writeFile(t, "register.csv",
		"RiskID,Title,Severity\nR1,Data residency gap,Critical\nR2,Routing latency,High\n")

	table, err := NewCSV(path, "Risk Register").Ingest()
	require.NoError(t, err)

	assert.Equal(t, []string{"RiskID", "Title", "Severity"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Data residency gap", table.Rows[0]["Title"])
	assert.Equal(t, "High", table.Rows[1]["Severity"])
}

func TestCSVIngestBOMAndShortRows(t *testing.T) {
	path := writeFile(t, "data.csv", "\ufeffName,Role\nAlice\n")

	table, err := NewCSV(path, "Stakeholders").Ingest()
	require.NoError(t, err)

	assert.Equal(t, "Name", table.Headers[0], "BOM stripped from first header")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Alice", table.Rows[0]["Name"])
	assert.Equal(t, "", table.Rows[0]["Role"], "short row pads with empty")
}

func TestCSVFormatForPrompt(t *testing.T) {
	path := writeFile(t, "reg.csv", "RiskID,Owner\nR1,Maya Chen\nR2,\n")

	text, err := NewCSV(path, "Risk Register").FormatForPrompt()
	require.NoError(t, err)

	assert.Contains(t, text, "# RISK REGISTER")
	assert.Contains(t, text, "Total Records: 2")
	assert.Contains(t, text, "## Record 1")
	assert.Contains(t, text, "  - Owner: Maya Chen")
	// Empty values are skipped.
	assert.NotContains(t, strings.Split(text, "## Record 2")[1], "Owner:")
}

func TestCSVEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	text, err := NewCSV(path, "Wrike").FormatForPrompt()
	require.NoError(t, err)
	assert.Contains(t, text, "(No data available)")
}

func TestCSVMissingPath(t *testing.T) {
	_, err := NewCSV("", "Gmail").Ingest()
	assert.ErrorContains(t, err, "no path specified")
}

const jiraFixture = `{
  "metadata": {"sprint": "Sprint 42", "sprintVelocity": 34, "completedStoryPoints": 21, "totalStoryPoints": 34},
  "issues": [
    {
      "key": "CX-101", "summary": "Fix intent misrouting", "status": "In Progress",
      "priority": "High", "assignee": "Jane Smith", "dueDate": "2025-11-16",
      "progress": 60, "storyPoints": 5,
      "description": "Bot routes refund intents to sales queue",
      "comments": [
        {"author": "a", "body": "first"},
        {"author": "b", "body": "second"},
        {"author": "c", "body": "third"}
      ]
    },
    {"key": "CX-102", "summary": "Add latency dashboards", "status": "To Do",
     "priority": "Medium", "assignee": "Ops", "dueDate": "2025-11-20", "progress": 0}
  ]
}`

func TestJiraFormatForPrompt(t *testing.T) {
	path := writeFile(t, "jira.json", jiraFixture)

	text, err := NewJira(path).FormatForPrompt()
	require.NoError(t, err)

	assert.Contains(t, text, "# JIRA TICKETS")
	assert.Contains(t, text, "Sprint: Sprint 42")
	assert.Contains(t, text, "Progress: 21/34 points")
	assert.Contains(t, text, "## In Progress (1 tickets)")
	assert.Contains(t, text, "### [CX-101] Fix intent misrouting")
	assert.Contains(t, text, "- Story Points: 5")
	assert.Contains(t, text, "- Story Points: ?", "missing story points render as ?")

	// Only the last two comments survive.
	assert.NotContains(t, text, "first")
	assert.Contains(t, text, "second")
	assert.Contains(t, text, "third")

	// Status order: In Progress before To Do.
	assert.Less(t, strings.Index(text, "In Progress"), strings.Index(text, "To Do"))
}

func TestJiraEmpty(t *testing.T) {
	path := writeFile(t, "jira.json", `{"issues": []}`)

	text, err := NewJira(path).FormatForPrompt()
	require.NoError(t, err)
	assert.Equal(t, "No Jira tickets available.\n", text)
}

const slackFixture = `{
  "channels": [
    {
      "channel_name": "#cx-escalations",
      "threads": [
        {
          "author": "renee.park", "text": "Compliance hold on the rollout", "thread_ts": "1731571200.000100",
          "reactions": [{"emoji": "warning", "count": 4}],
          "replies": [{"author": "maya.chen", "text": "Escalating to legal"}]
        }
      ]
    },
    {"channel_name": "#empty", "threads": []}
  ]
}`

func TestSlackFormatForPrompt(t *testing.T) {
	path := writeFile(t, "slack.json", slackFixture)

	text, err := NewSlack(path).FormatForPrompt()
	require.NoError(t, err)

	assert.Contains(t, text, "# SLACK CONVERSATIONS")
	assert.Contains(t, text, "## #cx-escalations (1 discussions)")
	assert.Contains(t, text, "### @renee.park - 1731571200.000100")
	assert.Contains(t, text, "Reactions: :warning: 4")
	assert.Contains(t, text, "→ maya.chen: Escalating to legal")
	assert.NotContains(t, text, "#empty", "channels without threads are skipped")
}

func TestNotesFormatForPrompt(t *testing.T) {
	path := writeFile(t, "notes.txt", "Discussed rollout freeze.\n")

	text, err := NewNotes(path).FormatForPrompt()
	require.NoError(t, err)
	assert.Equal(t, "# MEETING NOTES\n\nDiscussed rollout freeze.\n", text)
}

func TestForSelection(t *testing.T) {
	tests := []struct {
		key  string
		path string
		want string
	}{
		{"jira", "data/jira.json", "*ingest.JiraIngestor"},
		{"slack", "data/slack.json", "*ingest.SlackIngestor"},
		{"meeting_notes", "data/notes.txt", "*ingest.NotesIngestor"},
		{"risk_register", "data/register.csv", "*ingest.CSVIngestor"},
		{"risk_financials", "data/exposure.xlsx", "*ingest.XLSXIngestor"},
		{"hubspot", "data/deals.unknown", "*ingest.CSVIngestor"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ing := For(tt.key, config.SourceConfig{Enabled: true, Path: tt.path})
			assert.Equal(t, tt.want, typeName(ing))
		})
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *JiraIngestor:
		return "*ingest.JiraIngestor"
	case *SlackIngestor:
		return "*ingest.SlackIngestor"
	case *NotesIngestor:
		return "*ingest.NotesIngestor"
	case *XLSXIngestor:
		return "*ingest.XLSXIngestor"
	case *CSVIngestor:
		return "*ingest.CSVIngestor"
	default:
		return "unknown"
	}
}

func TestAll(t *testing.T) {
	dir := t.TempDir()
	notesPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notesPath, []byte("All hands recap."), 0o600))
	csvPath := filepath.Join(dir, "register.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("RiskID,Title\nR1,Gap\n"), 0o600))

	sources := map[string]config.SourceConfig{
		"meeting_notes": {Enabled: true, Path: notesPath},
		"risk_register": {Enabled: true, Path: csvPath},
		"jira":          {Enabled: false, Path: "ignored.json"},
		"slack":         {Enabled: true, Path: filepath.Join(dir, "missing.json")},
	}

	combined, err := All(sources)
	require.NoError(t, err)

	assert.Contains(t, combined, "# MEETING NOTES")
	assert.Contains(t, combined, "# RISK REGISTER")
	assert.Contains(t, combined, "====", "sections are separated")
	assert.NotContains(t, combined, "ignored")
}

func TestAllNothingIngested(t *testing.T) {
	_, err := All(map[string]config.SourceConfig{
		"jira": {Enabled: false, Path: "x.json"},
	})
	assert.ErrorContains(t, err, "no data sources")
}
