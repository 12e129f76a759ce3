// Package radar builds the structured risk context behind the CX risk radar
// report: merged risks and financials, sentiment trend analysis, the
// impact×likelihood exposure grid, stakeholder quadrants, and the 7-day
// action timeline.
package radar

import (
	"strconv"
	"strings"

	"github.com/damonayoung/status-summarizer-bot/internal/ingest"
)

// Risk is one row of the risk register merged with its financial exposure.
type Risk struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Severity   string `json:"severity"`
	Impact     string `json:"impact"`
	Likelihood string `json:"likelihood"`
	Strategy   string `json:"strategy"`
	Plan       string `json:"plan"`
	Owner      string `json:"owner"`
	TargetDate string `json:"target_date"`

	ExposureMillions float64 `json:"exposure_millions"`
	// TotalExposure is the same figure in dollars; charts want dollars.
	TotalExposure  float64 `json:"total_exposure"`
	FinancialNotes string  `json:"financial_notes,omitempty"`
}

// SentimentWeek is one row of the weekly CX sentiment series.
type SentimentWeek struct {
	WeekStart      string  `json:"week_start"`
	Score          float64 `json:"avg_sentiment_score"`
	Complaints     int     `json:"complaints"`
	Escalations    int     `json:"escalations"`
	LatencyMS      float64 `json:"latency_ms"`
	BlockedTickets int     `json:"blocked_tickets"`
	TrustIndex     float64 `json:"trust_index"`
	Notes          string  `json:"notes,omitempty"`
}

// Stakeholder is one row of the stakeholder map.
type Stakeholder struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	Org            string `json:"org,omitempty"`
	Influence      string `json:"influence"`
	Support        string `json:"support,omitempty"`
	Type           string `json:"type,omitempty"`
	EngagementPlan string `json:"engagement_plan,omitempty"`
}

// Context is the structured input for prompts, charts, and the dashboard.
type Context struct {
	Scenario      string          `json:"scenario"`
	ScenarioTitle string          `json:"scenario_title"`
	Risks         []Risk          `json:"risks"`
	Sentiment     []SentimentWeek `json:"cx_sentiment_trend"`
	Stakeholders  []Stakeholder   `json:"stakeholders_raw"`

	// Raw holds the remaining activity sources (wrike, gmail, hubspot,
	// confluence, calendar, and tabular jira/slack dumps) keyed by source.
	Raw map[string][]ingest.Row `json:"raw_sources"`

	// ChartPaths maps chart keys to rendered PNG paths, relative to the
	// output directory. Populated by the chart stage.
	ChartPaths map[string]string `json:"chart_paths,omitempty"`
}

// field fetches a row value trying each key in order, tolerating the
// capitalization drift between exports (Name vs name).
func field(row ingest.Row, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok && v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// parseFloat coerces a CSV value to float64, defaulting to 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt coerces a CSV value to int, defaulting to 0.
func parseInt(s string) int {
	return int(parseFloat(s))
}
