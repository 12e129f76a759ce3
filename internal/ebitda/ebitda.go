// Package ebitda builds the deterministic EBITDA waterfall for the risk
// radar report. No model calls here, only arithmetic over the risk context.
package ebitda

import (
	"math"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

// Component kinds for waterfall rendering.
const (
	KindBase     = "base"
	KindNegative = "negative"
	KindPositive = "positive"
	KindFinal    = "final"
)

// Tuning factors for translating risk exposure into EBITDA movements.
const (
	// Revenue impact per 10% sentiment drop.
	revenuePctPerTenPointDrop = 2.0
	// Likelihood of incurring the full compliance penalty.
	penaltyRiskFactor = 0.3
	// Share of operational exposure that lands as increased OpEx.
	opexFactor = 0.2
	// Gross automation benefit as a share of baseline EBITDA.
	automationBenefitShare = 0.15
	// Cap on how much operational risk can erode the automation benefit.
	automationReductionCap = 0.5
)

// Component is one bar of the waterfall chart.
type Component struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Kind  string  `json:"type"`
}

// Waterfall is the EBITDA impact view, all figures in millions.
type Waterfall struct {
	Baseline            float64 `json:"baseline_ebitda"`
	RevenueLeakage      float64 `json:"revenue_leakage"`
	CompliancePenalties float64 `json:"compliance_penalties"`
	OpexInefficiency    float64 `json:"opex_inefficiency"`
	AutomationGains     float64 `json:"automation_gains"`
	Final               float64 `json:"final_ebitda"`

	TotalImpact         float64 `json:"total_impact"`
	ImpactPct           float64 `json:"impact_pct"`
	TotalNegativeImpact float64 `json:"total_negative_impact"`

	SentimentDropPct          float64 `json:"sentiment_drop_pct"`
	AutomationReductionFactor float64 `json:"automation_reduction_factor"`

	Components []Component `json:"waterfall_components"`
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round1(f float64) float64 { return math.Round(f*10) / 10 }

// Build computes the waterfall from the risk context. Scenarios without
// risk data get a zero waterfall with no components.
func Build(ctx *radar.Context, cfg config.EBITDAConfig) *Waterfall {
	w := &Waterfall{}
	if ctx == nil || len(ctx.Risks) == 0 {
		return w
	}

	baseline := cfg.BaselineMillions
	if baseline == 0 {
		baseline = config.DefaultEBITDABaseline
	}
	complianceIDs := cfg.ComplianceRiskIDs
	if len(complianceIDs) == 0 {
		complianceIDs = []string{"R1"}
	}
	operationalIDs := cfg.OperationalRiskIDs
	if len(operationalIDs) == 0 {
		operationalIDs = []string{"R2", "R3", "R4"}
	}

	// Revenue leakage: sentiment decline drives churn, 2% of revenue per
	// 10% sentiment drop against the first recorded week.
	sentimentImpactPct := ctx.BaselineDropPct() / 10.0 * revenuePctPerTenPointDrop
	revenueLeakage := baseline * sentimentImpactPct / 100.0

	exposureOf := func(ids []string) float64 {
		want := make(map[string]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
		var total float64
		for _, r := range ctx.Risks {
			if want[r.ID] {
				total += r.ExposureMillions
			}
		}
		return total
	}

	compliancePenalties := exposureOf(complianceIDs) * penaltyRiskFactor

	operationalExposure := exposureOf(operationalIDs)
	opexInefficiency := operationalExposure * opexFactor

	// Automation still pays off, but operational risk erodes the benefit.
	grossAutomation := baseline * automationBenefitShare
	reduction := math.Min(automationReductionCap, operationalExposure/(baseline*0.5))
	automationGains := grossAutomation * (1.0 - reduction)

	totalNegative := revenueLeakage + compliancePenalties + opexInefficiency
	totalImpact := automationGains - totalNegative
	final := baseline + totalImpact

	impactPct := 0.0
	if baseline > 0 {
		impactPct = totalImpact / baseline * 100.0
	}

	w.Baseline = round2(baseline)
	w.RevenueLeakage = round2(revenueLeakage)
	w.CompliancePenalties = round2(compliancePenalties)
	w.OpexInefficiency = round2(opexInefficiency)
	w.AutomationGains = round2(automationGains)
	w.Final = round2(final)
	w.TotalImpact = round2(totalImpact)
	w.ImpactPct = round1(impactPct)
	w.TotalNegativeImpact = round2(totalNegative)
	w.SentimentDropPct = round1(sentimentImpactPct)
	w.AutomationReductionFactor = round1(reduction * 100)

	w.Components = []Component{
		{Label: "Baseline EBITDA", Value: w.Baseline, Kind: KindBase},
		{Label: "Revenue Leakage", Value: -w.RevenueLeakage, Kind: KindNegative},
		{Label: "Compliance Penalties", Value: -w.CompliancePenalties, Kind: KindNegative},
		{Label: "OpEx Inefficiency", Value: -w.OpexInefficiency, Kind: KindNegative},
		{Label: "Automation Gains", Value: w.AutomationGains, Kind: KindPositive},
		{Label: "Final EBITDA", Value: w.Final, Kind: KindFinal},
	}

	return w
}
