package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/damonayoung/status-summarizer-bot/internal/config"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

//go:embed executive_report.html
var executiveTemplate string

// heatRow is one impact row of the 4x4 heatmap table, highest impact first.
type heatRow struct {
	Label string
	Class string
	Cells []string
}

// riskRow is a display-ready top risk with formatted exposure and badge class.
type riskRow struct {
	ID            string
	Title         string
	Severity      string
	SeverityClass string
	Exposure      string
	Owner         string
	TargetDate    string
	Status        string
	Plan          string
}

type chartRef struct {
	Title string
	Src   string
}

// pageData feeds the executive report template. Dashboard and the derived
// slices are nil for default (non-scenario) reports, which fall back to the
// static KPI strip.
type pageData struct {
	Title     string
	Date      string
	Timestamp string
	Scenario  string
	Content   template.HTML

	Dashboard *radar.Dashboard
	HeatRows  []heatRow
	TopRisks  []riskRow
	ChartList []chartRef

	KPIDeliveryValue string
	KPIDeliveryTrend string
	KPIVelocityValue string
	KPIVelocityTrend string
	KPICostValue     string
	KPICostTrend     string
}

var heatImpacts = []struct{ Key, Label, Class string }{
	{"crit", "Critical", "risk-cell-critical"},
	{"high", "High", "risk-cell-high"},
	{"med", "Medium", "risk-cell-medium"},
	{"low", "Low", "risk-cell-low"},
}

var heatLikelihoods = []string{"low", "med", "high", "crit"}

func buildHeatRows(cells map[string]string) []heatRow {
	rows := make([]heatRow, 0, len(heatImpacts))
	for _, imp := range heatImpacts {
		row := heatRow{Label: imp.Label, Class: imp.Class}
		for _, lik := range heatLikelihoods {
			row.Cells = append(row.Cells, cells[imp.Key+"_"+lik])
		}
		rows = append(rows, row)
	}
	return rows
}

func buildRiskRows(risks []radar.TopRisk) []riskRow {
	rows := make([]riskRow, 0, len(risks))
	for _, r := range risks {
		exposure := fmt.Sprintf("$%.1fM", r.ExposureMillions)
		if r.ExposureShare != nil {
			exposure = fmt.Sprintf("$%.1fM (%.0f%%)", r.ExposureMillions, *r.ExposureShare)
		}
		rows = append(rows, riskRow{
			ID:            r.ID,
			Title:         r.Title,
			Severity:      r.Severity,
			SeverityClass: badgeClass(r.Severity),
			Exposure:      exposure,
			Owner:         r.Owner,
			TargetDate:    r.TargetDate,
			Status:        r.Status,
			Plan:          r.PlanSummary,
		})
	}
	return rows
}

// Chart slots in display order; absent keys are skipped.
var chartSlots = []struct{ Key, Title string }{
	{"sentiment_trend", "CX Sentiment Trend"},
	{"complaints_escalations", "Complaints & Escalations"},
	{"risk_exposure", "Top Risk Exposure"},
	{"risk_heatmap", "Risk Heat Map"},
	{"stakeholder_map", "Stakeholder Map"},
	{"ebitda_waterfall", "EBITDA Waterfall"},
}

func buildChartList(paths map[string]string) []chartRef {
	var refs []chartRef
	for _, slot := range chartSlots {
		if src, ok := paths[slot.Key]; ok && src != "" {
			refs = append(refs, chartRef{Title: slot.Title, Src: src})
		}
	}
	return refs
}

// WriteHTML renders the executive HTML report. dash and charts may be nil
// for default reports. Returns the file path, or "" when the html format is
// disabled (it defaults off).
func WriteHTML(cfg *config.Config, sc *config.Scenario, scenarioName, summary string, dash *radar.Dashboard, charts map[string]string, now time.Time) (string, error) {
	f := cfg.Format(sc, "html")
	if !f.IsEnabled(false) {
		return "", nil
	}

	title := cfg.Report.Title
	if sc != nil {
		title = sc.Title
		if title == "" {
			title = "Report"
		}
	}

	text := executiveTemplate
	if f.Template != "" {
		raw, err := os.ReadFile(f.Template) // #nosec G304 - template path comes from config
		if err != nil {
			return "", fmt.Errorf("read html template: %w", err)
		}
		text = string(raw)
	}
	tmpl, err := template.New("executive_report").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse html template: %w", err)
	}

	data := pageData{
		Title:     title,
		Date:      now.Format(dateLayout),
		Timestamp: now.Format("2006-01-02 15:04:05"),
		Scenario:  scenarioName,
		Content:   template.HTML(ConvertSections(summary)), // #nosec G203 - sections are generated HTML
		Dashboard: dash,
		ChartList: buildChartList(charts),

		KPIDeliveryValue: "Stable",
		KPIDeliveryTrend: "Trajectory ↗",
		KPIVelocityValue: "Healthy",
		KPIVelocityTrend: "Sustained ↑",
		KPICostValue:     "Caution",
		KPICostTrend:     "Infra ↑",
	}
	if dash != nil {
		data.HeatRows = buildHeatRows(dash.RiskHeatmap)
		data.TopRisks = buildRiskRows(dash.TopRisks)
	}

	path, err := resolveOutput(f, now)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("write html report: %w", err)
	}
	return path, nil
}
