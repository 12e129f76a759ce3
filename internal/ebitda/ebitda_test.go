package ebitda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

func testContext() *radar.Context {
	return &radar.Context{
		Risks: []radar.Risk{
			{ID: "R1", Title: "Data residency gap", ExposureMillions: 8.0},
			{ID: "R2", Title: "Routing latency", ExposureMillions: 3.5},
			{ID: "R3", Title: "Agent churn", ExposureMillions: 1.0},
		},
		Sentiment: []radar.SentimentWeek{
			{WeekStart: "2025-10-27", Score: 80},
			{WeekStart: "2025-11-03", Score: 72},
		},
	}
}

func TestBuild(t *testing.T) {
	w := Build(testContext(), config.EBITDAConfig{})

	assert.Equal(t, 50.0, w.Baseline)

	// 10% sentiment drop -> 2% revenue impact on a $50M baseline.
	assert.Equal(t, 2.0, w.SentimentDropPct)
	assert.Equal(t, 1.0, w.RevenueLeakage)

	// R1 exposure at the 30% penalty factor.
	assert.Equal(t, 2.4, w.CompliancePenalties)

	// R2+R3 exposure at the 20% OpEx factor.
	assert.Equal(t, 0.9, w.OpexInefficiency)

	// Gross $7.5M benefit eroded 18% by $4.5M operational exposure.
	assert.Equal(t, 18.0, w.AutomationReductionFactor)
	assert.Equal(t, 6.15, w.AutomationGains)

	assert.Equal(t, 4.3, w.TotalNegativeImpact)
	assert.Equal(t, 1.85, w.TotalImpact)
	assert.Equal(t, 51.85, w.Final)
	assert.Equal(t, 3.7, w.ImpactPct)
}

func TestBuildComponents(t *testing.T) {
	w := Build(testContext(), config.EBITDAConfig{})

	require.Len(t, w.Components, 6)
	assert.Equal(t, Component{Label: "Baseline EBITDA", Value: 50.0, Kind: KindBase}, w.Components[0])
	assert.Equal(t, Component{Label: "Revenue Leakage", Value: -1.0, Kind: KindNegative}, w.Components[1])
	assert.Equal(t, Component{Label: "Automation Gains", Value: 6.15, Kind: KindPositive}, w.Components[4])
	assert.Equal(t, Component{Label: "Final EBITDA", Value: 51.85, Kind: KindFinal}, w.Components[5])
}

func TestBuildConfigOverrides(t *testing.T) {
	cfg := config.EBITDAConfig{
		BaselineMillions:   100.0,
		ComplianceRiskIDs:  []string{"R2"},
		OperationalRiskIDs: []string{"R1"},
	}
	w := Build(testContext(), cfg)

	assert.Equal(t, 100.0, w.Baseline)
	assert.Equal(t, 1.05, w.CompliancePenalties, "R2 at 30%")
	assert.Equal(t, 1.6, w.OpexInefficiency, "R1 at 20%")
}

func TestBuildAutomationReductionCap(t *testing.T) {
	ctx := &radar.Context{
		Risks: []radar.Risk{
			{ID: "R2", ExposureMillions: 40.0},
		},
	}
	w := Build(ctx, config.EBITDAConfig{})

	// 40/25 would be 160%; capped at 50% of the gross benefit.
	assert.Equal(t, 50.0, w.AutomationReductionFactor)
	assert.Equal(t, 3.75, w.AutomationGains)
}

func TestBuildNoRisks(t *testing.T) {
	w := Build(&radar.Context{}, config.EBITDAConfig{})
	assert.Zero(t, w.Baseline)
	assert.Empty(t, w.Components)

	w = Build(nil, config.EBITDAConfig{})
	assert.Zero(t, w.Final)
}
