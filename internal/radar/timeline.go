package radar

import (
	"fmt"
	"strings"
	"time"

	"github.com/damonayoung/status-summarizer-bot/internal/ingest"
	"github.com/damonayoung/status-summarizer-bot/internal/timeparsing"
)

// Phase is one bucket of the 7-day action timeline.
type Phase struct {
	Label   string   `json:"label"`
	Status  string   `json:"status"`
	Actions []string `json:"actions"`
}

// BuildTimeline assembles the 7-day action plan. A timeline source with
// phase_label rows wins outright; otherwise phases are derived from risk
// target dates relative to now, with a static plan as the last resort.
func (c *Context) BuildTimeline(now time.Time) []Phase {
	if phases := phasesFromSource(c.Raw["timeline"]); len(phases) > 0 {
		return phases
	}
	return c.derivePhases(now)
}

// phasesFromSource groups timeline rows by phase label, preserving the
// order labels first appear in the file.
func phasesFromSource(rows []ingest.Row) []Phase {
	var order []string
	grouped := map[string]*Phase{}

	for _, row := range rows {
		label := field(row, "phase_label", "PhaseLabel")
		if label == "" {
			continue
		}
		p, ok := grouped[label]
		if !ok {
			p = &Phase{Label: label, Status: "Planned"}
			grouped[label] = p
			order = append(order, label)
		}
		if action := field(row, "action", "Action"); action != "" {
			p.Actions = append(p.Actions, action)
		}
		if status := field(row, "status", "Status"); status != "" && p.Status == "Planned" {
			p.Status = status
		}
	}

	phases := make([]Phase, 0, len(order))
	for _, label := range order {
		phases = append(phases, *grouped[label])
	}
	return phases
}

func (c *Context) derivePhases(now time.Time) []Phase {
	var immediate, nearTerm []Risk
	for _, r := range c.Risks {
		if r.TargetDate == "" {
			continue
		}
		due, err := timeparsing.ParseTargetDate(r.TargetDate, now)
		if err != nil {
			continue
		}
		days := int(due.Sub(now).Hours() / 24)
		switch {
		case days <= 7:
			immediate = append(immediate, r)
		case days <= 30:
			nearTerm = append(nearTerm, r)
		}
	}

	if len(immediate) == 0 && len(nearTerm) == 0 {
		return staticPhases()
	}

	// Days 1-2: emergency work on critical risks already inside the window.
	var phase1 []string
	for _, r := range immediate {
		if strings.EqualFold(r.Severity, "Critical") && len(phase1) < 2 {
			phase1 = append(phase1, fmt.Sprintf("Emergency mitigation for: %s", r.Title))
		}
	}
	if len(phase1) == 0 {
		phase1 = []string{
			"Triage and assess all critical risks",
			"Establish daily stand-ups with key stakeholders",
		}
	}

	// Days 3-4: first sentence of the top mitigation plans.
	var phase2 []string
	for _, r := range immediate {
		if len(phase2) == 3 {
			break
		}
		sev := strings.ToLower(r.Severity)
		if sev != "critical" && sev != "high" {
			continue
		}
		summary := fmt.Sprintf("Mitigate %s", r.Title)
		if r.Plan != "" {
			summary = strings.SplitN(r.Plan, ".", 2)[0]
		}
		if len(summary) > 100 {
			summary = summary[:100]
		}
		phase2 = append(phase2, summary)
	}
	if len(phase2) == 0 {
		phase2 = []string{
			"Deploy primary risk controls and guardrails",
			"Review and update escalation procedures",
		}
	}

	return []Phase{
		{Label: "Days 1–2", Status: "In Progress", Actions: phase1},
		{Label: "Days 3–4", Status: "Planned", Actions: phase2},
		{Label: "Days 5–7", Status: "Planned", Actions: []string{
			"Run end-to-end validation of CX flows and risk controls",
			"Scale mitigations across all customer touchpoints",
			"Prepare executive readout and next-phase roadmap",
		}},
	}
}

func staticPhases() []Phase {
	return []Phase{
		{Label: "Days 1–2", Status: "In Progress", Actions: []string{
			"Assess all critical and high-severity risks",
			"Establish emergency response protocols",
			"Schedule stakeholder alignment meetings",
		}},
		{Label: "Days 3–4", Status: "Planned", Actions: []string{
			"Deploy primary risk mitigations and controls",
			"Begin stakeholder engagement and communication plan",
			"Set up monitoring and early warning systems",
		}},
		{Label: "Days 5–7", Status: "Planned", Actions: []string{
			"Validate mitigation effectiveness across CX flows",
			"Scale successful interventions",
			"Prepare comprehensive status report for leadership",
		}},
	}
}
