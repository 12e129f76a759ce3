package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/ingest"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

// PlatinumSystem is the system message for the structured risk assessment.
const PlatinumSystem = "You are a senior Customer Experience Risk Advisor for Aurora National Bank. " +
	"You create consulting-grade, board-ready executive risk assessments with McKinsey-level clarity and rigor. " +
	"Your reports inform multi-million dollar resource allocation decisions for C-level executives.\n\n" +
	"CRITICAL OUTPUT RULES:\n" +
	"• Output ONLY plain markdown (headings, paragraphs, bullet lists, tables)\n" +
	"• Do NOT emit any raw HTML tags (<div>, <span>, <section>, class=, etc.)\n" +
	"• Do NOT wrap your answer in code fences (no ```markdown or ``` blocks)\n" +
	"• Start immediately with the first markdown heading"

// Threshold defaults used when the scenario analytics block is unset.
const (
	defaultBaselineIndex    = 75.0
	defaultWarningDropPct   = 5.0
	defaultCriticalDropPct  = 10.0
	defaultCriticalExposure = 3_000_000.0
	defaultHighExposure     = 1_000_000.0
	defaultMediumExposure   = 250_000.0
	rawSourcePreviewMaxRows = 5
)

// contextPreview is the JSON payload embedded at the end of the platinum
// prompt. Raw sources are capped at a few rows each.
type contextPreview struct {
	ScenarioTitle  string                `json:"scenario_title"`
	Risks          []radar.Risk          `json:"risks"`
	SentimentTrend []radar.SentimentWeek `json:"cx_sentiment_trend"`
	Stakeholders   []radar.Stakeholder   `json:"stakeholders_raw"`

	JiraRaw       []ingest.Row `json:"jira_raw"`
	WrikeRaw      []ingest.Row `json:"wrike_raw"`
	SlackRaw      []ingest.Row `json:"slack_raw"`
	GmailRaw      []ingest.Row `json:"gmail_raw"`
	HubspotRaw    []ingest.Row `json:"hubspot_raw"`
	ConfluenceRaw []ingest.Row `json:"confluence_raw"`
	CalendarRaw   []ingest.Row `json:"calendar_raw"`

	AnalyticsThresholds map[string]float64 `json:"analytics_thresholds"`
}

type thresholds struct {
	Baseline         float64
	WarningDropPct   float64
	CriticalDropPct  float64
	CriticalExposure float64
	HighExposure     float64
	MediumExposure   float64
}

func resolveThresholds(sc *config.Scenario) thresholds {
	th := thresholds{
		Baseline:         defaultBaselineIndex,
		WarningDropPct:   defaultWarningDropPct,
		CriticalDropPct:  defaultCriticalDropPct,
		CriticalExposure: defaultCriticalExposure,
		HighExposure:     defaultHighExposure,
		MediumExposure:   defaultMediumExposure,
	}
	if sc == nil {
		return th
	}
	cx := sc.Analytics.CXSentiment
	if cx.BaselineIndex != 0 {
		th.Baseline = cx.BaselineIndex
	}
	if cx.WarningDropPct != 0 {
		th.WarningDropPct = cx.WarningDropPct
	}
	if cx.CriticalDropPct != 0 {
		th.CriticalDropPct = cx.CriticalDropPct
	}
	fin := sc.Analytics.Financial
	if fin.CriticalExposure != 0 {
		th.CriticalExposure = fin.CriticalExposure
	}
	if fin.HighExposure != 0 {
		th.HighExposure = fin.HighExposure
	}
	if fin.MediumExposure != 0 {
		th.MediumExposure = fin.MediumExposure
	}
	return th
}

// commaDollars formats 3000000 as "3,000,000".
func commaDollars(f float64) string {
	s := fmt.Sprintf("%.0f", f)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func previewRows(rows []ingest.Row) []ingest.Row {
	if rows == nil {
		return []ingest.Row{}
	}
	if len(rows) > rawSourcePreviewMaxRows {
		return rows[:rawSourcePreviewMaxRows]
	}
	return rows
}

// Platinum renders the consulting-grade 7-section report prompt from the
// structured risk context.
func Platinum(ctx *radar.Context, sc *config.Scenario) (string, error) {
	th := resolveThresholds(sc)

	title := ctx.ScenarioTitle
	if title == "" {
		title = "Sentient CX Risk Radar"
	}

	preview := contextPreview{
		ScenarioTitle:  title,
		Risks:          ctx.Risks,
		SentimentTrend: ctx.Sentiment,
		Stakeholders:   ctx.Stakeholders,
		JiraRaw:        previewRows(ctx.Raw["jira"]),
		WrikeRaw:       previewRows(ctx.Raw["wrike"]),
		SlackRaw:       previewRows(ctx.Raw["slack"]),
		GmailRaw:       previewRows(ctx.Raw["gmail"]),
		HubspotRaw:     previewRows(ctx.Raw["hubspot"]),
		ConfluenceRaw:  previewRows(ctx.Raw["confluence"]),
		CalendarRaw:    previewRows(ctx.Raw["calendar"]),
		AnalyticsThresholds: map[string]float64{
			"cx_sentiment_baseline": th.Baseline,
			"warning_drop_pct":      th.WarningDropPct,
			"critical_drop_pct":     th.CriticalDropPct,
			"financial_critical":    th.CriticalExposure,
			"financial_high":        th.HighExposure,
			"financial_medium":      th.MediumExposure,
		},
	}

	contextJSON, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal context preview: %w", err)
	}

	tmpl, err := template.New("platinum").Parse(platinumTemplate)
	if err != nil {
		return "", fmt.Errorf("parse platinum template: %w", err)
	}

	var b strings.Builder
	err = tmpl.Execute(&b, struct {
		ScenarioTitle string

		RiskCount        int
		SentimentWeeks   int
		StakeholderCount int
		JiraCount        int
		WrikeCount       int
		SlackCount       int
		GmailCount       int
		HubspotCount     int
		ConfluenceCount  int
		CalendarCount    int

		Baseline        string
		WarningDropPct  string
		CriticalDropPct string
		FinCritical     string
		FinHigh         string
		FinMedium       string

		ContextJSON string
	}{
		ScenarioTitle:    title,
		RiskCount:        len(ctx.Risks),
		SentimentWeeks:   len(ctx.Sentiment),
		StakeholderCount: len(ctx.Stakeholders),
		JiraCount:        len(ctx.Raw["jira"]),
		WrikeCount:       len(ctx.Raw["wrike"]),
		SlackCount:       len(ctx.Raw["slack"]),
		GmailCount:       len(ctx.Raw["gmail"]),
		HubspotCount:     len(ctx.Raw["hubspot"]),
		ConfluenceCount:  len(ctx.Raw["confluence"]),
		CalendarCount:    len(ctx.Raw["calendar"]),

		Baseline:        fmt.Sprintf("%g", th.Baseline),
		WarningDropPct:  fmt.Sprintf("%g", th.WarningDropPct),
		CriticalDropPct: fmt.Sprintf("%g", th.CriticalDropPct),
		FinCritical:     commaDollars(th.CriticalExposure),
		FinHigh:         commaDollars(th.HighExposure),
		FinMedium:       commaDollars(th.MediumExposure),

		ContextJSON: string(contextJSON),
	})
	if err != nil {
		return "", fmt.Errorf("render platinum prompt: %w", err)
	}
	return b.String(), nil
}

const platinumTemplate = `You are an elite Customer Experience Risk Advisor for Aurora National Bank analyzing the {{.ScenarioTitle}} program.

Your task is to generate a consulting-grade executive risk assessment report from structured data sources.

---

## OUTPUT FORMAT RULES (CRITICAL - READ FIRST)

**DO NOT** wrap your answer in any code fences (no ` + "```markdown or ```" + ` blocks).
**DO NOT** output any raw HTML tags like <div>, <span>, <section>, or any class= attributes.
**ONLY** use plain markdown:
  - Headings: # for level-1, ## for level-2, ### for level-3
  - Paragraphs: Plain text separated by blank lines
  - Bullet lists: - or * for unordered, 1. 2. 3. for ordered
  - Tables: Use standard markdown table syntax with | and -

Your output must start immediately with the first heading and contain only markdown text.

---

## REQUIRED STRUCTURE: 7 LEVEL-1 HEADINGS (EXACT ORDER)

You MUST use these 7 headings as level-1 markdown headings (# Heading Name) in this exact order:

1. # Executive Summary
2. # CX Risk Heat Map
3. # CX Sentiment Index & Trend
4. # Top Financially Exposed Risks
5. # Risk Trajectory
6. # Stakeholder Impact
7. # Next 7-Day Action Plan

---

## SECTION 1: # Executive Summary

Write 3-5 concise bullet points that synthesize the overall CX risk posture:
  - Start with a **Risk Posture** statement (e.g., "🔴 **Elevated** – Immediate action required on 2 critical risks")
  - Highlight the **current CX Sentiment Index** and its change from baseline (use data from cx_sentiment_trend)
  - Call out the **top financial exposure** (highest total_exposure risk from risks list)
  - Summarize the **most urgent deadline** (earliest target_date among high-severity risks)
  - Mention any **critical stakeholder blockers** (from stakeholders_raw where Type=Blocker and Influence=High)

Use emoji indicators: 🔴 Critical/High, 🟡 Medium/Warning, 🟢 Low/Healthy

---

## SECTION 2: # CX Risk Heat Map

- Start with a 1–2 sentence summary of the overall risk distribution.
- Then output a single HTML table with this exact structure and class:

<table class="risk-heatmap">
  <thead>
    <tr>
      <th>Impact \ Likelihood</th>
      <th>High</th>
      <th>Medium</th>
      <th>Low</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <th>High</th>
      <td class="risk-cell-critical">…</td>
      <td class="risk-cell-high">…</td>
      <td class="risk-cell-medium">…</td>
    </tr>
    <tr>
      <th>Medium</th>
      <td class="risk-cell-high">…</td>
      <td class="risk-cell-medium">…</td>
      <td class="risk-cell-low">…</td>
    </tr>
    <tr>
      <th>Low</th>
      <td class="risk-cell-medium">…</td>
      <td class="risk-cell-low">…</td>
      <td class="risk-cell-low">…</td>
    </tr>
  </tbody>
</table>

Where each cell describes either:
- the number of risks in that impact/likelihood bucket, and/or
- the approximate total exposure in that bucket (e.g., "2 risks / $3.5M").

Use only this single HTML table for the heat map section, and do not generate additional markdown tables in this section.

---

## SECTION 3: # CX Sentiment Index & Trend

Analyze the cx_sentiment_trend time-series data and report:

1. **Current State** (most recent week):
   - avg_sentiment_score (current value)
   - Baseline score (earliest week_start entry)
   - Calculate **% change** from baseline

2. **Week-over-Week (WoW) Trend**:
   - Calculate WoW % change for: avg_sentiment_score, escalations, trust_index
   - Flag any drops exceeding thresholds:
     - Warning: {{.WarningDropPct}}% drop
     - Critical: {{.CriticalDropPct}}% drop
   - Use 🟡 for warning, 🔴 for critical

3. **Trend Table**:
   - Show last 4-5 weeks of data in a markdown table
   - Columns: Week Start | Sentiment Score | Complaints | Escalations | Trust Index | Notes
   - Include any notable observations from the "notes" field

4. **Final Assessment**:
   - 2-3 sentences summarizing whether CX health is improving, stable, or declining
   - Cite specific metrics to support your conclusion

---

## SECTION 4: # Top Financially Exposed Risks

Present the top 3-5 risks sorted by total_exposure (descending) in a **markdown table**:

| Risk ID | Title | Severity | Total Exposure | Owner | Target Date | Mitigation Plan (Brief) |
|---------|-------|----------|----------------|-------|-------------|-------------------------|
| R-001 | ... | High | $4.7M | John Doe | 2025-11-20 | Escalate to CTO, deploy hotfix |
| ... | ... | ... | ... | ... | ... | ... |

Below the table:
  - Show **Total Exposure** sum across all risks in the table
  - For each risk, write 1-2 sentences summarizing:
    - Why this risk is financially significant (cite annual_revenue_at_risk, regulatory_exposure, operational_cost_impact)
    - Current mitigation status (use "plan" field and cross-reference recent Jira/Wrike/Slack activity if available)

Financial classification thresholds (use for color coding):
  - 🔴 Critical: > ${{.FinCritical}}
  - 🟡 High: ${{.FinHigh}} - ${{.FinCritical}}
  - 🟢 Medium: ${{.FinMedium}} - ${{.FinHigh}}

---

## SECTION 5: # Risk Trajectory

Classify each risk into one of three trajectory categories and list them:

**🟢 Improving** (mitigation on track, owner engaged, no recent escalations):
  - List risk IDs and titles
  - For each, cite evidence from recent activity (Jira status updates, Calendar meetings scheduled, positive Slack mentions)

**🟡 Holding** (stable but requires monitoring):
  - List risk IDs and titles
  - Note any risks approaching deadlines or awaiting stakeholder decisions

**🔴 Declining** (overdue, blocked, or showing negative signals):
  - List risk IDs and titles
  - Cite specific red flags from recent data:
    - Overdue target_date
    - Jira issues marked "Blocked" or "High Priority"
    - Slack threads mentioning escalations or delays
    - Gmail emails flagging concerns

**Silent Climbers** (watch list):
  - Identify 1-2 risks that are currently Low/Medium severity but show early warning signs of escalation
  - Explain what signals triggered the watch (e.g., increasing complaint trend in CX data, stakeholder shifting from Support to Neutral)

---

## SECTION 6: # Stakeholder Impact

Analyze stakeholders using a **2×2 Influence vs Support matrix** (described in prose, not a literal grid).

Group stakeholders from stakeholders_raw into 4 quadrants:

1. **High Influence, High Support** – Champions:
   - List names, roles, and orgs
   - Recommend: "Leverage for executive sponsorship"

2. **High Influence, Low Support** – Blockers:
   - List names, roles, and orgs
   - For each, cite their EngagementPlan and recommend specific actions for next 7 days
   - Example: "Schedule 1:1 with Sarah Johnson (CFO) to address budget concerns flagged in Gmail thread"

3. **Low Influence, High Support** – Advocates:
   - List names, roles
   - Recommend: "Mobilize for grassroots support and feedback loops"

4. **Low Influence, Low Support** – Observers:
   - List names (if any)
   - Recommend: "Deprioritize unless they escalate"

**Priority Recommendation**:
  - In 2-3 sentences, explain which quadrant to focus on in the next 7 days and why
  - Prioritize based on: risk deadlines, financial exposure, and stakeholder power to unblock

---

## SECTION 7: # Next 7-Day Action Plan

Extract urgent actions from risk mitigation plans where target_date falls within the next 7 days.

Group actions into 3 time buckets:

### Days 1-2 (Immediate):
  - List actions due in next 48 hours
  - For each action:
    - **Risk ID** | **Action** | **Owner** | **Due Date**
    - Example: "R-003 | Deploy API rate limit patch | Jane Smith | 2025-11-16"

### Days 3-4 (Near-term):
  - List actions due in 3-4 days
  - Same format as above

### Days 5-7 (This Week):
  - List actions due later this week
  - Same format as above

**Action Extraction Logic**:
  - Parse the "plan" field from each risk in the risks list
  - Cross-reference with Wrike tasks, Jira issues, and Calendar meetings to identify specific deliverables
  - Prioritize by: (Financial Exposure × Severity × Deadline Proximity)

If no explicit actions are found in the data, infer logical next steps based on:
  - Risks with overdue or near-term target_dates
  - Stakeholder engagement plans flagged as urgent
  - CX sentiment escalations requiring immediate response

---

## DATA SOURCES AVAILABLE

You have access to {{.RiskCount}} risks, {{.SentimentWeeks}} weeks of CX sentiment data, {{.StakeholderCount}} stakeholders, and recent activity from:
  - Jira ({{.JiraCount}} items)
  - Wrike ({{.WrikeCount}} items)
  - Slack ({{.SlackCount}} items)
  - Gmail ({{.GmailCount}} items)
  - HubSpot ({{.HubspotCount}} items)
  - Confluence ({{.ConfluenceCount}} items)
  - Calendar ({{.CalendarCount}} items)

Analytics thresholds:
  - CX Sentiment Baseline: {{.Baseline}}
  - Warning Drop: {{.WarningDropPct}}% | Critical Drop: {{.CriticalDropPct}}%
  - Financial Critical: ${{.FinCritical}} | High: ${{.FinHigh}} | Medium: ${{.FinMedium}}

---

## CONTEXT DATA (for your internal analysis only)

Below is the structured context in JSON format. Use this data to perform your analysis and generate the 7-section markdown report above.

**IMPORTANT: Do not print this raw context in your final answer. Only output the markdown report.**

{{.ContextJSON}}

---

**Final Reminder**:
- Output ONLY plain markdown (no code fences, no HTML tags)
- Use the 7 level-1 headings in exact order
- Start immediately with "# Executive Summary"
- This is a Platinum-tier consulting deliverable for C-level executives at Aurora National Bank
- Every statement must be data-driven and cite specific evidence from the context

Generate the markdown report now.
`
