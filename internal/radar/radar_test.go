package radar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/ingest"
)

var testNow = time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testScenarioConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	register := writeSource(t, dir, "register.csv",
		"RiskID,Title,Severity,ImpactLevel,LikelihoodLevel,Plan,Owner,TargetDate\n"+
			"R1,Data residency gap,Critical,Critical,High,File DPA addendum. Then audit.,Maya Chen,11/16/25\n"+
			"R2,Routing latency,High,High,Medium,Shard the intent router. Roll out gradually.,Ops,11/20/25\n"+
			"R3,Agent churn,Medium,Medium,Low,Backfill the queue team.,People,01/15/26\n")
	financials := writeSource(t, dir, "financials.csv",
		"RiskID,ExposureMillions,notes\nR1,8.0,Regulator fines\nR2,3.5,SLA credits\nR3,1.0,\n")
	sentiment := writeSource(t, dir, "sentiment.csv",
		"week_start,avg_sentiment_score,complaints,escalations\n"+
			"2025-11-03,72,40,6\n2025-10-27,75,31,4\n")
	stakeholders := writeSource(t, dir, "stakeholders.csv",
		"Name,Role,Influence,Type\n"+
			"Dana Wu,VP Customer Experience,High,Sponsor\n"+
			"Renée Park,Head of Risk,High,\n"+
			"Sam Ortiz,Support Lead,Low,Driver\n"+
			"Lee Tran,Analyst,Low,\n")

	return &config.Config{
		Scenarios: map[string]*config.Scenario{
			"cx_risk": {
				Title: "CX Risk Radar",
				DataSources: map[string]config.SourceConfig{
					"risk_register":   {Enabled: true, Path: register},
					"risk_financials": {Enabled: true, Path: financials},
					"cx_sentiment":    {Enabled: true, Path: sentiment},
					"stakeholders":    {Enabled: true, Path: stakeholders},
				},
			},
		},
	}
}

func TestBuildContext(t *testing.T) {
	ctx, err := BuildContext(testScenarioConfig(t), "cx_risk")
	require.NoError(t, err)

	assert.Equal(t, "CX Risk Radar", ctx.ScenarioTitle)
	require.Len(t, ctx.Risks, 3)
	assert.Equal(t, 8.0, ctx.Risks[0].ExposureMillions)
	assert.Equal(t, 8_000_000.0, ctx.Risks[0].TotalExposure)
	assert.Equal(t, "Regulator fines", ctx.Risks[0].FinancialNotes)

	// Sentiment is sorted by week even when the file is not.
	require.Len(t, ctx.Sentiment, 2)
	assert.Equal(t, "2025-10-27", ctx.Sentiment[0].WeekStart)
	assert.Equal(t, "2025-11-03", ctx.Sentiment[1].WeekStart)

	assert.Len(t, ctx.Stakeholders, 4)
	assert.Equal(t, 12.5, ctx.TotalExposureMillions())
}

func TestBuildContextUnknownScenario(t *testing.T) {
	_, err := BuildContext(testScenarioConfig(t), "nope")
	assert.Error(t, err)
}

func TestTopRisksByExposure(t *testing.T) {
	ctx := &Context{Risks: []Risk{
		{ID: "R2", ExposureMillions: 3.5},
		{ID: "R1", ExposureMillions: 8.0},
		{ID: "R3", ExposureMillions: 1.0},
	}}

	top := ctx.TopRisksByExposure(2)
	require.Len(t, top, 2)
	assert.Equal(t, "R1", top[0].ID)
	assert.Equal(t, "R2", top[1].ID)
}

func TestDeltaText(t *testing.T) {
	assert.Equal(t, "▼ -4.0% vs prior period", deltaText(72, 75))
	assert.Equal(t, "▲ 50.0% vs prior period", deltaText(6, 4))
	assert.Equal(t, "■ 0.0% vs prior period", deltaText(5, 5))
	assert.Equal(t, "", deltaText(5, 0))
}

func TestSentimentKPIs(t *testing.T) {
	tests := []struct {
		name       string
		weeks      []SentimentWeek
		wantLabel  string
		wantDelta  string
	}{
		{
			name:      "empty trend is stable",
			weeks:     nil,
			wantLabel: StatusStable,
		},
		{
			name:      "single week has no prior period",
			weeks:     []SentimentWeek{{Score: 80, Escalations: 2}},
			wantLabel: StatusStable,
			wantDelta: "No prior period for comparison",
		},
		{
			name: "sentiment below comfort band",
			weeks: []SentimentWeek{
				{Score: 70, Escalations: 3},
				{Score: 63, Escalations: 4},
			},
			wantLabel: StatusElevated,
			wantDelta: "▼ -10.0% vs prior period",
		},
		{
			name: "escalation volume forces critical",
			weeks: []SentimentWeek{
				{Score: 75, Escalations: 5},
				{Score: 74, Escalations: 12},
			},
			wantLabel: StatusCritical,
		},
		{
			name: "sentiment under sixty is critical",
			weeks: []SentimentWeek{
				{Score: 62, Escalations: 1},
				{Score: 58, Escalations: 1},
			},
			wantLabel: StatusCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &Context{Sentiment: tt.weeks}
			kpis := ctx.SentimentKPIs()
			assert.Equal(t, tt.wantLabel, kpis.StatusLabel)
			if tt.wantDelta != "" {
				assert.Equal(t, tt.wantDelta, kpis.SentimentDelta)
			}
		})
	}
}

func TestBaselineDropPct(t *testing.T) {
	ctx := &Context{Sentiment: []SentimentWeek{{Score: 80}, {Score: 76}, {Score: 72}}}
	assert.InDelta(t, 10.0, ctx.BaselineDropPct(), 0.001)

	assert.Zero(t, (&Context{}).BaselineDropPct())
}

func TestBuildHeatmap(t *testing.T) {
	ctx := &Context{Risks: []Risk{
		{Impact: "Critical", Likelihood: "High", ExposureMillions: 8.0},
		{Impact: "High", Likelihood: "Medium", ExposureMillions: 3.0},
		{Impact: "Medium", Likelihood: "Medium", ExposureMillions: 3.0},
		{Impact: "Low", Likelihood: "Low", ExposureMillions: 2.0},
	}}

	heat := ctx.BuildHeatmap()

	assert.Equal(t, "$8.0M", heat.Cells["crit_high"])
	assert.Equal(t, "$3.0M", heat.Cells["high_med"])
	assert.Equal(t, "$0M", heat.Cells["low_crit"], "untouched cells stay $0M")
	assert.Len(t, heat.Cells, 16)

	assert.Equal(t, "69%", heat.HighShare)
	assert.Equal(t, "19%", heat.MedShare)
	assert.Equal(t, "12%", heat.LowShare)

	assert.Equal(t, "$8.0M", heat.Cell("Critical", "High"))
}

func TestBuildHeatmapEmpty(t *testing.T) {
	heat := (&Context{}).BuildHeatmap()
	assert.Equal(t, "~0%", heat.HighShare)
	assert.Equal(t, "~0%", heat.MedShare)
	assert.Equal(t, "~0%", heat.LowShare)
}

func TestBuildHeatmapOffGridLikelihood(t *testing.T) {
	ctx := &Context{Risks: []Risk{
		{Impact: "High", Likelihood: "High", ExposureMillions: 8.0},
		{Impact: "High", Likelihood: "Unknown", ExposureMillions: 2.0},
		{Impact: "Low", Likelihood: "Low", ExposureMillions: 2.0},
	}}

	heat := ctx.BuildHeatmap()

	// The off-grid row stays out of the cells and the row sums; the share
	// denominator remains the full exposure.
	assert.Equal(t, "$8.0M", heat.Cells["high_high"])
	assert.Len(t, heat.Cells, 16)
	assert.Equal(t, "67%", heat.HighShare)
	assert.Equal(t, "0%", heat.MedShare)
	assert.Equal(t, "17%", heat.LowShare)
}

func TestStakeholderQuadrants(t *testing.T) {
	ctx := &Context{Stakeholders: []Stakeholder{
		{Name: "Dana Wu", Role: "VP CX", Influence: "High", Type: "Sponsor"},
		{Name: "Renée Park", Role: "Head of Risk", Influence: "High"},
		{Name: "Sam Ortiz", Role: "Support Lead", Influence: "Low", Type: "Driver"},
		{Name: "Lee Tran", Role: "Analyst", Influence: "Low"},
		{Name: "Pat Kim", Role: "CFO", Influence: "High", Support: "Low"},
	}}

	q := ctx.StakeholderQuadrants()

	require.Len(t, q.Champions, 1)
	assert.Equal(t, "Dana Wu", q.Champions[0].Name)

	require.Len(t, q.Blockers, 2)
	assert.Equal(t, "Renée Park", q.Blockers[0].Name, "risk role infers low support")
	assert.Equal(t, "Pat Kim", q.Blockers[1].Name, "explicit support column wins")

	require.Len(t, q.Advocates, 1)
	assert.Equal(t, "Sam Ortiz", q.Advocates[0].Name)

	require.Len(t, q.Observers, 1)
	assert.Equal(t, "Lee Tran", q.Observers[0].Name)
}

func TestTimelineFromSource(t *testing.T) {
	ctx := &Context{Raw: map[string][]ingest.Row{
		"timeline": {
			{"phase_label": "Days 1–2", "status": "In Progress", "action": "Freeze rollout"},
			{"phase_label": "Days 1–2", "action": "Stand up war room"},
			{"phase_label": "Days 3–4", "action": "Ship router fix"},
		},
	}}

	phases := ctx.BuildTimeline(testNow)
	require.Len(t, phases, 2)
	assert.Equal(t, "Days 1–2", phases[0].Label)
	assert.Equal(t, "In Progress", phases[0].Status)
	assert.Equal(t, []string{"Freeze rollout", "Stand up war room"}, phases[0].Actions)
	assert.Equal(t, "Planned", phases[1].Status)
}

func TestTimelineDerived(t *testing.T) {
	ctx := &Context{Risks: []Risk{
		{Title: "Data residency gap", Severity: "Critical", TargetDate: "11/16/25",
			Plan: "File DPA addendum. Then audit."},
		{Title: "Routing latency", Severity: "High", TargetDate: "11/19/25",
			Plan: "Shard the intent router. Roll out gradually."},
		{Title: "Agent churn", Severity: "Medium", TargetDate: "01/15/26"},
	}}

	phases := ctx.BuildTimeline(testNow)
	require.Len(t, phases, 3)

	assert.Equal(t, "Days 1–2", phases[0].Label)
	assert.Equal(t, "In Progress", phases[0].Status)
	assert.Equal(t, []string{"Emergency mitigation for: Data residency gap"}, phases[0].Actions)

	// Plans collapse to their first sentence.
	assert.Equal(t, []string{"File DPA addendum", "Shard the intent router"}, phases[1].Actions)

	assert.Equal(t, "Days 5–7", phases[2].Label)
	assert.Len(t, phases[2].Actions, 3)
}

func TestTimelineStaticFallback(t *testing.T) {
	ctx := &Context{Risks: []Risk{{Title: "Undated", Severity: "High"}}}

	phases := ctx.BuildTimeline(testNow)
	require.Len(t, phases, 3)
	assert.Equal(t, "Assess all critical and high-severity risks", phases[0].Actions[0])
	assert.Equal(t, "Planned", phases[1].Status)
}

func TestBuildDashboard(t *testing.T) {
	ctx, err := BuildContext(testScenarioConfig(t), "cx_risk")
	require.NoError(t, err)

	d := ctx.BuildDashboard(testNow)

	assert.Equal(t, StatusStable, d.CXStatusLabel)
	assert.Equal(t, 72.0, d.SentimentIndexCurrent)
	assert.Equal(t, "▼ -4.0% vs prior period", d.SentimentDeltaText)
	assert.Equal(t, 12.5, d.TotalExposureMillions)

	assert.Equal(t, "R1", d.TopExposureLabel)
	assert.Equal(t, "Data residency gap", d.TopExposureComment)

	require.Len(t, d.TopRisks, 3)
	top := d.TopRisks[0]
	assert.Equal(t, "At Risk", top.Status)
	require.NotNil(t, top.ExposureShare)
	assert.Equal(t, 64.0, *top.ExposureShare)

	assert.Equal(t, "$8.0M", d.RiskHeatmap["crit_high"])
	assert.Len(t, d.StakeholdersChampions, 1)
	require.NotEmpty(t, d.TimelinePhases)
	assert.Equal(t, "Days 1–2", d.TimelinePhases[0].Label)
}
