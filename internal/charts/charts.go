// Package charts renders the static PNG charts embedded in the HTML report:
// sentiment trend, complaints/escalations, risk exposure, the risk heat
// map, the stakeholder quadrant map, and the EBITDA waterfall.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/damonayoung/status-summarizer-bot/internal/debug"
	"github.com/damonayoung/status-summarizer-bot/internal/ebitda"
	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

const chartsDirName = "charts"

// Shared palette, lifted from the report stylesheet.
var (
	colorSky    = color.RGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
	colorGreen  = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	colorAmber  = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorRed    = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	colorGray   = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	colorOrange = color.RGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}

	waterfallGrey  = color.RGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
	waterfallRed   = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	waterfallGreen = color.RGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
)

// Generate renders every chart with data into <outputDir>/charts and
// returns chart keys mapped to paths relative to outputDir. Charts without
// data are skipped without error; individual render failures are logged and
// skipped so one bad chart never sinks the report.
func Generate(ctx *radar.Context, w *ebitda.Waterfall, outputDir string) (map[string]string, error) {
	chartsDir := filepath.Join(outputDir, chartsDirName)
	if err := os.MkdirAll(chartsDir, 0o750); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}

	type job struct {
		key    string
		render func(dir string) (string, error)
	}
	jobs := []job{
		{"sentiment_trend", func(dir string) (string, error) { return sentimentTrendChart(ctx.Sentiment, dir) }},
		{"complaints_escalations", func(dir string) (string, error) { return complaintsEscalationsChart(ctx.Sentiment, dir) }},
		{"risk_exposure", func(dir string) (string, error) { return riskExposureChart(ctx.Risks, dir) }},
		{"risk_heatmap", func(dir string) (string, error) { return riskHeatmapChart(ctx.Risks, dir) }},
		{"stakeholder_map", func(dir string) (string, error) { return stakeholderMapChart(ctx.Stakeholders, dir) }},
		{"ebitda_waterfall", func(dir string) (string, error) { return waterfallChart(w, dir) }},
	}

	paths := map[string]string{}
	for _, j := range jobs {
		file, err := j.render(chartsDir)
		if err != nil {
			debug.PrintNormal("  ✗ Chart %s failed: %v\n", j.key, err)
			continue
		}
		if file == "" {
			continue
		}
		paths[j.key] = filepath.Join(chartsDirName, file)
	}
	return paths, nil
}

func savePlot(p *plot.Plot, dir, file string, width, height vg.Length) (string, error) {
	if err := p.Save(width, height, filepath.Join(dir, file)); err != nil {
		return "", fmt.Errorf("save %s: %w", file, err)
	}
	return file, nil
}

// levelValue maps Low/Medium/High (and Critical) onto the 1..3 chart axes.
func levelValue(s string) float64 {
	switch s {
	case "High", "Critical", "high", "critical":
		return 3
	case "Low", "low":
		return 1
	default:
		return 2
	}
}
