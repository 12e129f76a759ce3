// Package prompt renders the model prompts for each report flavor: the
// default weekly status report, the concise risk narrative, and the
// structured platinum risk assessment.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
)

// WeeklySystem is the system message for the default weekly report.
const WeeklySystem = "You are an expert Technical Program Manager who creates crisp, actionable executive summaries."

// Weekly renders the default weekly status prompt over the combined source
// text.
func Weekly(combinedData string, rep config.ReportConfig) (string, error) {
	tmpl, err := template.New("weekly").Parse(weeklyTemplate)
	if err != nil {
		return "", fmt.Errorf("parse weekly template: %w", err)
	}

	var b strings.Builder
	err = tmpl.Execute(&b, struct {
		Data         string
		Stakeholders string
	}{
		Data:         combinedData,
		Stakeholders: strings.Join(rep.Stakeholders, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("render weekly prompt: %w", err)
	}
	return b.String(), nil
}

// Narrative renders the concise executive narrative prompt for a risk
// scenario.
func Narrative(combinedData string, sc *config.Scenario) (string, error) {
	tmpl, err := template.New("narrative").Parse(narrativeTemplate)
	if err != nil {
		return "", fmt.Errorf("parse narrative template: %w", err)
	}

	title := sc.Title
	if title == "" {
		title = "CX Risk Radar"
	}

	var focus strings.Builder
	for _, f := range sc.PromptFocus {
		focus.WriteString("- " + f + "\n")
	}

	var b strings.Builder
	err = tmpl.Execute(&b, struct {
		Title      string
		Data       string
		FocusAreas string
	}{
		Title:      title,
		Data:       combinedData,
		FocusAreas: strings.TrimRight(focus.String(), "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("render narrative prompt: %w", err)
	}
	return b.String(), nil
}

const weeklyTemplate = `You are an elite Technical Program Manager AI assistant creating an EXECUTIVE-READY status report.

DATA SOURCES:
{{.Data}}

CRITICAL INSTRUCTIONS - EXECUTIVE FORMAT:

Generate a concise, visual, narrative-driven report focused on IMPACT, RISK, and DECISIONS.

## STRUCTURE (EXACT FORMAT REQUIRED):

### 1. AT-A-GLANCE DASHBOARD
Create a markdown table with these columns: Area | Status | Key Metric | Trend
- Use status emojis: 🟢 On Track, 🟠 At Risk, 🔴 Critical
- Use trend symbols: ▲ Up, ▼ Down, ↑ Rising, ↓ Falling, ✅ Complete
- Cover 5-6 key areas (Platform, Features, Costs, People, Customer)
- After table, add one-line summary: "> Overall status summary here"

### 2. EXECUTIVE HIGHLIGHTS (MAX 3 bullets)
- Focus on BUSINESS OUTCOMES, not technical details
- Include customer impact, ROI, or business metrics
- Format: **Bold achievement** → tangible result (numbers/percentages)
- Example: "**API v2.0 migration** boosted performance +40%, cutting page-load times from 1.2s → 0.7s"

### 3. TOP RISKS & MITIGATIONS (Table Format)
Markdown table: Risk | Severity | Owner | Mitigation / ETA
- Severity: 🔴 Critical, 🟠 High, 🟡 Medium
- List 3-5 top risks only
- Mitigations must be action-oriented with dates
- Add "⚠️ Decision Needed" if exec approval required

### 4. KEY WINS (2-4 items)
- Use emoji indicators: 🚀 Launch, 🔒 Security, 📉 Reduction, ⚙️ Performance
- Format: "🚀 **Achievement** → impact (metric)"
- Keep to one line each

### 5. STAKEHOLDER PULSE (Compact Table)
Table: Function | Sentiment | Focus / Ask
- Sentiment emojis: ✅ Positive, ⚙️ Neutral, ⚠️ Concern, 🔥 Urgent
- Cover: {{.Stakeholders}}
- One-line focus per stakeholder

### 6. NEXT WEEK / EXECUTIVE ACTIONS
**Top 3 Priorities:**
1. Priority with date
2. Priority with date
3. Priority with date

**Decisions Needed:**
- Decision point with business impact
- Decision point with business impact

### 7. METRICS SNAPSHOT (If applicable)
Brief table or bullets with trending indicators (▲▼)

TONE GUIDELINES:
- Short, verb-first sentences
- Remove filler words ("includes", "showing", "following")
- Lead with business impact, not technical implementation
- Use "→" to show cause-effect
- Add quantitative impact where possible (time saved, cost reduced, deals enabled)
- Maximum 2-3 sentences per bullet point

AVOID:
- Long paragraphs
- Repeated phrasing
- Technical jargon without context
- Operational details that don't affect decisions

This report should enable executives to make decisions in 2 minutes of reading.
`

const narrativeTemplate = `You are an elite Customer Experience Risk Analyst creating a concise executive narrative for {{.Title}}.

DATA SOURCES (Jira, Wrike, Slack, Gmail, HubSpot, Confluence, Calendar, Risk Register, Stakeholders):
{{.Data}}

CRITICAL INSTRUCTIONS - CONCISE EXECUTIVE NARRATIVE:

Write a brief, scannable executive summary (under 350 words total) that synthesizes CX risk posture across all data sources.

STRUCTURE:

Opening paragraph (2-3 sentences):
- State overall CX risk posture (Green/Yellow/Red) and why
- Mention highest-severity item driving that posture
- Include dollar exposure if available from risk_financials data

Sentiment & escalations paragraph (2-3 sentences):
- Current CX sentiment trend (from cx_sentiment_metrics: sentiment_index, escalation_count)
- Week-over-week change (improving/stable/declining)
- Any critical alerts from Slack/Gmail/HubSpot

Risks & stakeholders paragraph (2-3 sentences):
- Name 1-2 top risks from Risk Register (title + severity + owner + target date)
- Mention key blocker stakeholder if any (e.g., Renée Park / VP Risk & Compliance)
- Cross-team dependency or coordination issue if present

Optional bullets (maximum 3 total) for next 7 days:
• [Day range] Most urgent action → expected outcome (owner)
• [Day range] Critical decision needed → business impact (stakeholder)
• [Day range] Key milestone or gate → consequence if missed

TONE:
- Direct, executive language
- Quantify when possible (dollars, dates, percentages)
- Risk-first framing (what could go wrong, what's at stake)
- No markdown headings (###), no tables, no long lists
- Plain paragraph text + optional 3 bullets max

FOCUS AREAS (from configuration):
{{.FocusAreas}}

EXAMPLES OF WHAT TO AVOID:
❌ Long bulleted lists (5+ items)
❌ Markdown tables
❌ Section headings like "## Executive Overview"
❌ Verbose explanations or background context
❌ Technical jargon without business translation

WHAT TO INCLUDE:
✅ Specific risk IDs, issue keys, stakeholder names
✅ Dollar amounts, dates, percentages
✅ Clear ownership and timelines
✅ Customer impact in business terms (revenue, churn, SLA breach)

Target length: 250-350 words. Be ruthlessly concise. Every sentence must earn its place.
`
