package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// JiraExport is the shape of a Jira JSON export file.
type JiraExport struct {
	Issues   []JiraIssue  `json:"issues"`
	Metadata JiraMetadata `json:"metadata"`
}

// JiraMetadata carries sprint-level figures.
type JiraMetadata struct {
	Sprint               string  `json:"sprint"`
	SprintVelocity       float64 `json:"sprintVelocity"`
	CompletedStoryPoints float64 `json:"completedStoryPoints"`
	TotalStoryPoints     float64 `json:"totalStoryPoints"`
}

// JiraIssue is one ticket in the export.
type JiraIssue struct {
	Key         string        `json:"key"`
	Summary     string        `json:"summary"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	Assignee    string        `json:"assignee"`
	DueDate     string        `json:"dueDate"`
	Progress    float64       `json:"progress"`
	StoryPoints *float64      `json:"storyPoints"`
	Description string        `json:"description"`
	Comments    []JiraComment `json:"comments"`
}

// JiraComment is a ticket comment.
type JiraComment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// JiraIngestor reads a Jira JSON export.
type JiraIngestor struct {
	path string
}

func NewJira(path string) *JiraIngestor { return &JiraIngestor{path: path} }

func (j *JiraIngestor) SourceName() string { return "Jira" }

// Ingest loads and parses the export file.
func (j *JiraIngestor) Ingest() (*JiraExport, error) {
	if j.path == "" {
		return nil, fmt.Errorf("jira ingestor requires a path in config")
	}

	data, err := os.ReadFile(j.path) // #nosec G304 - path comes from user config
	if err != nil {
		return nil, fmt.Errorf("jira: %w", err)
	}

	var export JiraExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("jira: parse export: %w", err)
	}
	return &export, nil
}

// statusOrder fixes the prompt section order; statuses outside this list
// are omitted, matching the report's in-flight-first reading order.
var statusOrder = []string{"In Progress", "To Do", "Done"}

// FormatForPrompt renders tickets grouped by status with sprint metadata.
func (j *JiraIngestor) FormatForPrompt() (string, error) {
	export, err := j.Ingest()
	if err != nil {
		return "", err
	}
	if len(export.Issues) == 0 {
		return "No Jira tickets available.\n", nil
	}

	var b strings.Builder
	b.WriteString("# JIRA TICKETS\n\n")

	if export.Metadata.Sprint != "" {
		fmt.Fprintf(&b, "Sprint: %s\n", export.Metadata.Sprint)
		fmt.Fprintf(&b, "Sprint Velocity: %g points\n", export.Metadata.SprintVelocity)
		fmt.Fprintf(&b, "Progress: %g/%g points\n",
			export.Metadata.CompletedStoryPoints, export.Metadata.TotalStoryPoints)
	}

	byStatus := make(map[string][]JiraIssue)
	for _, issue := range export.Issues {
		byStatus[issue.Status] = append(byStatus[issue.Status], issue)
	}

	for _, status := range statusOrder {
		issues := byStatus[status]
		if len(issues) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s (%d tickets)\n", status, len(issues))
		for _, issue := range issues {
			fmt.Fprintf(&b, "\n### [%s] %s\n", issue.Key, issue.Summary)
			fmt.Fprintf(&b, "- Priority: %s\n", issue.Priority)
			fmt.Fprintf(&b, "- Assignee: %s\n", issue.Assignee)
			fmt.Fprintf(&b, "- Due Date: %s\n", issue.DueDate)
			fmt.Fprintf(&b, "- Progress: %g%%\n", issue.Progress)
			if issue.StoryPoints != nil {
				fmt.Fprintf(&b, "- Story Points: %g\n", *issue.StoryPoints)
			} else {
				b.WriteString("- Story Points: ?\n")
			}
			if issue.Description != "" {
				fmt.Fprintf(&b, "- Description: %s\n", issue.Description)
			}

			// Last two comments only: older ones rarely change the status picture.
			if len(issue.Comments) > 0 {
				b.WriteString("- Recent Updates:\n")
				comments := issue.Comments
				if len(comments) > 2 {
					comments = comments[len(comments)-2:]
				}
				for _, comment := range comments {
					fmt.Fprintf(&b, "  - %s: %s\n", comment.Author, comment.Body)
				}
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
