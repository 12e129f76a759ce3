package radar

import (
	"fmt"
	"sort"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/debug"
	"github.com/damonayoung/status-summarizer-bot/internal/ingest"
)

// structuredSources are consumed into typed context fields; everything else
// in the scenario lands in Context.Raw.
var structuredSources = map[string]bool{
	"risk_register":   true,
	"risk_financials": true,
	"cx_sentiment":    true,
	"stakeholders":    true,
	"timeline":        true,
}

// BuildContext loads the scenario's CSV sources and assembles the
// structured risk context. Missing or broken sources degrade to empty
// slices; only an unknown scenario is an error.
func BuildContext(cfg *config.Config, scenarioName string) (*Context, error) {
	sc, err := cfg.Scenario(scenarioName)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Scenario:      scenarioName,
		ScenarioTitle: sc.Title,
		Risks:         []Risk{},
		Sentiment:     []SentimentWeek{},
		Stakeholders:  []Stakeholder{},
		Raw:           map[string][]ingest.Row{},
	}
	if ctx.ScenarioTitle == "" {
		ctx.ScenarioTitle = scenarioName
	}

	registerRows := loadTable(sc, "risk_register")
	financialRows := loadTable(sc, "risk_financials")
	ctx.Risks = mergeRisks(registerRows, financialRows)
	debug.PrintNormal("  ✓ Merged risks with financials: %d risks\n", len(ctx.Risks))

	for _, row := range loadTable(sc, "cx_sentiment") {
		ctx.Sentiment = append(ctx.Sentiment, SentimentWeek{
			WeekStart:      field(row, "week_start", "WeekStart"),
			Score:          parseFloat(field(row, "avg_sentiment_score", "sentiment_index")),
			Complaints:     parseInt(field(row, "complaints")),
			Escalations:    parseInt(field(row, "escalations")),
			LatencyMS:      parseFloat(field(row, "latency_ms")),
			BlockedTickets: parseInt(field(row, "blocked_tickets")),
			TrustIndex:     parseFloat(field(row, "trust_index")),
			Notes:          field(row, "notes"),
		})
	}
	sort.SliceStable(ctx.Sentiment, func(i, j int) bool {
		return ctx.Sentiment[i].WeekStart < ctx.Sentiment[j].WeekStart
	})

	for _, row := range loadTable(sc, "stakeholders") {
		ctx.Stakeholders = append(ctx.Stakeholders, Stakeholder{
			Name:           field(row, "Name", "name"),
			Role:           field(row, "Role", "role"),
			Org:            field(row, "Org", "org"),
			Influence:      field(row, "Influence", "influence"),
			Support:        field(row, "Support", "support"),
			Type:           field(row, "Type", "type"),
			EngagementPlan: field(row, "EngagementPlan", "engagement_plan"),
		})
	}

	// Remaining activity sources stay raw for prompt previews.
	keys := make([]string, 0, len(sc.DataSources))
	for key := range sc.DataSources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if structuredSources[key] {
			continue
		}
		ctx.Raw[key] = loadTable(sc, key)
	}

	return ctx, nil
}

// loadTable reads one enabled CSV/XLSX source into rows, or nil when the
// source is disabled, missing, or unreadable.
func loadTable(sc *config.Scenario, key string) []ingest.Row {
	src, ok := sc.DataSources[key]
	if !ok || !src.Enabled {
		return nil
	}

	ing := ingest.For(key, src)
	tabular, ok := ing.(interface{ Ingest() (*ingest.Table, error) })
	if !ok {
		return nil
	}

	table, err := tabular.Ingest()
	if err != nil {
		debug.PrintNormal("  ✗ Failed to load %s: %v\n", key, err)
		return nil
	}
	debug.Logf("loaded %s: %d records\n", key, len(table.Rows))
	return table.Rows
}

// mergeRisks left-joins register rows with financial rows on RiskID.
func mergeRisks(register, financials []ingest.Row) []Risk {
	byID := make(map[string]ingest.Row, len(financials))
	for _, row := range financials {
		if id := field(row, "RiskID", "risk_id"); id != "" {
			byID[id] = row
		}
	}

	risks := make([]Risk, 0, len(register))
	for _, row := range register {
		id := field(row, "RiskID", "risk_id")
		fin := byID[id]

		exposure := parseFloat(field(fin, "ExposureMillions", "exposure_millions"))
		risks = append(risks, Risk{
			ID:               id,
			Title:            field(row, "Title"),
			Severity:         field(row, "Severity"),
			Impact:           field(row, "ImpactLevel", "Impact"),
			Likelihood:       field(row, "LikelihoodLevel", "Likelihood"),
			Strategy:         field(row, "Strategy"),
			Plan:             field(row, "Plan"),
			Owner:            field(row, "Owner"),
			TargetDate:       field(row, "TargetDate"),
			ExposureMillions: exposure,
			TotalExposure:    exposure * 1_000_000,
			FinancialNotes:   field(fin, "notes", "Notes"),
		})
	}
	return risks
}

// TotalExposureMillions sums exposure across all risks.
func (c *Context) TotalExposureMillions() float64 {
	var total float64
	for _, r := range c.Risks {
		total += r.ExposureMillions
	}
	return total
}

// TopRisksByExposure returns the n most exposed risks, descending.
func (c *Context) TopRisksByExposure(n int) []Risk {
	sorted := make([]Risk, len(c.Risks))
	copy(sorted, c.Risks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExposureMillions > sorted[j].ExposureMillions
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summary is the one-line ingest recap printed after context assembly.
func (c *Context) Summary() string {
	return fmt.Sprintf("%d risks, %d sentiment records, %d stakeholders",
		len(c.Risks), len(c.Sentiment), len(c.Stakeholders))
}
