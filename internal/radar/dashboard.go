package radar

import (
	"math"
	"time"
)

// TopRisk is one entry of the top financially exposed risks table.
type TopRisk struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Severity         string   `json:"severity"`
	ExposureMillions float64  `json:"exposure_millions"`
	ExposureShare    *float64 `json:"exposure_share"`
	Owner            string   `json:"owner"`
	TargetDate       string   `json:"target_date"`
	Status           string   `json:"status"`
	PlanSummary      string   `json:"plan_summary"`
}

// Dashboard is the fully derived analytics view handed to the report
// templates and the platinum prompt. Field names follow the template
// placeholders.
type Dashboard struct {
	CXStatusLabel    string `json:"cx_status_label"`
	CXStatusSubtitle string `json:"cx_status_subtitle"`

	SentimentIndexCurrent float64 `json:"sentiment_index_current"`
	SentimentDeltaText    string  `json:"sentiment_delta_text"`
	EscalationsCurrent    int     `json:"escalations_current"`
	EscalationsDeltaText  string  `json:"escalations_delta_text"`

	TopExposureLabel      string  `json:"top_exposure_label"`
	TopExposureComment    string  `json:"top_exposure_comment"`
	TotalExposureMillions float64 `json:"total_exposure_millions"`

	RiskHeatmap   map[string]string `json:"risk_heatmap"`
	HighCritShare string            `json:"high_crit_share"`
	MedShare      string            `json:"med_share"`
	LowShare      string            `json:"low_share"`

	TopRisks []TopRisk `json:"top_risks"`

	StakeholdersChampions []QuadrantMember `json:"stakeholders_champions"`
	StakeholdersBlockers  []QuadrantMember `json:"stakeholders_blockers"`
	StakeholdersAdvocates []QuadrantMember `json:"stakeholders_advocates"`
	StakeholdersObservers []QuadrantMember `json:"stakeholders_observers"`

	TimelinePhases []Phase `json:"timeline_phases"`
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// BuildDashboard runs every analytic pass over the context and assembles
// the dashboard. now anchors the timeline's due-date math.
func (c *Context) BuildDashboard(now time.Time) *Dashboard {
	kpis := c.SentimentKPIs()
	heat := c.BuildHeatmap()
	quads := c.StakeholderQuadrants()
	total := c.TotalExposureMillions()

	d := &Dashboard{
		CXStatusLabel:         kpis.StatusLabel,
		CXStatusSubtitle:      kpis.StatusSubtitle,
		SentimentIndexCurrent: kpis.Current,
		SentimentDeltaText:    kpis.SentimentDelta,
		EscalationsCurrent:    kpis.Escalations,
		EscalationsDeltaText:  kpis.EscalationsDelta,

		TotalExposureMillions: round1(total),
		RiskHeatmap:           heat.Cells,
		HighCritShare:         heat.HighShare,
		MedShare:              heat.MedShare,
		LowShare:              heat.LowShare,

		StakeholdersChampions: quads.Champions,
		StakeholdersBlockers:  quads.Blockers,
		StakeholdersAdvocates: quads.Advocates,
		StakeholdersObservers: quads.Observers,

		TimelinePhases: c.BuildTimeline(now),
	}

	for i, r := range c.TopRisksByExposure(3) {
		if i == 0 {
			d.TopExposureLabel = r.ID
			d.TopExposureComment = r.Title
		}

		top := TopRisk{
			ID:               r.ID,
			Title:            r.Title,
			Severity:         r.Severity,
			ExposureMillions: round1(r.ExposureMillions),
			Owner:            r.Owner,
			TargetDate:       r.TargetDate,
			Status:           "At Risk",
			PlanSummary:      r.Plan,
		}
		if top.ID == "" {
			top.ID = "R?"
		}
		if top.Title == "" {
			top.Title = "Untitled risk"
		}
		if top.Severity == "" {
			top.Severity = "High"
		}
		if top.Owner == "" {
			top.Owner = "Unassigned"
		}
		if top.TargetDate == "" {
			top.TargetDate = "TBD"
		}
		if top.PlanSummary == "" {
			top.PlanSummary = "Stabilize CX flows and implement controls."
		}
		if total != 0 {
			share := round1(r.ExposureMillions / total * 100.0)
			top.ExposureShare = &share
		}

		d.TopRisks = append(d.TopRisks, top)
	}

	return d
}
