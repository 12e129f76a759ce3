package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

// riskExposureChart draws the top 5 risks by dollar exposure as horizontal
// bars with $M value labels.
func riskExposureChart(risks []radar.Risk, dir string) (string, error) {
	if len(risks) == 0 {
		return "", nil
	}

	sorted := make([]radar.Risk, len(risks))
	copy(sorted, risks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalExposure > sorted[j].TotalExposure
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	values := make(plotter.Values, len(sorted))
	names := make([]string, len(sorted))
	var maxExposure float64
	for i, r := range sorted {
		values[i] = r.ExposureMillions
		maxExposure = math.Max(maxExposure, r.ExposureMillions)

		title := r.Title
		if len(title) > 30 {
			title = title[:30] + "..."
		}
		names[i] = fmt.Sprintf("%s: %s", r.ID, title)
	}

	p := plot.New()
	p.Title.Text = "Top 5 Financially Exposed Risks"
	p.X.Label.Text = "Total Exposure ($M)"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return "", err
	}
	bars.Horizontal = true
	bars.Color = colorOrange
	p.Add(bars)
	p.NominalY(names...)

	labels := make([]string, len(sorted))
	pts := make(plotter.XYs, len(sorted))
	for i, r := range sorted {
		labels[i] = fmt.Sprintf("$%.1fM", r.ExposureMillions)
		pts[i] = plotter.XY{X: r.ExposureMillions + maxExposure*0.02, Y: float64(i)}
	}
	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return "", err
	}
	p.Add(valueLabels)

	return savePlot(p, dir, "risk_exposure.png", 7*vg.Inch, 3.5*vg.Inch)
}

// heatGrid is the 3×3 impact×likelihood grid behind the heat map. Axis
// index 0 is Low, 2 is High/Critical.
type heatGrid struct {
	score [3][3]float64
}

func (g heatGrid) Dims() (c, r int)   { return 3, 3 }
func (g heatGrid) Z(c, r int) float64 { return g.score[r][c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

var levelTicks = []plot.Tick{
	{Value: 0, Label: "Low"},
	{Value: 1, Label: "Medium"},
	{Value: 2, Label: "High"},
}

// riskHeatmapChart draws the 3×3 impact×likelihood heat map, annotating
// each cell with its risk count and exposure.
func riskHeatmapChart(risks []radar.Risk, dir string) (string, error) {
	if len(risks) == 0 {
		return "", nil
	}

	var counts [3][3]int
	var exposure [3][3]float64
	for _, r := range risks {
		i := int(levelValue(r.Severity)) - 1
		j := int(levelValue(r.Likelihood)) - 1
		counts[i][j]++
		exposure[i][j] += r.TotalExposure
	}

	var grid heatGrid
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			// Weight cell color by position and log exposure so one huge
			// exposure does not wash out the rest of the grid.
			grid.score[i][j] = float64(i+1) * float64(j+1) * math.Log10(exposure[i][j]+1)
		}
	}

	p := plot.New()
	p.Title.Text = "CX Risk Heat Map (Impact x Likelihood)"
	p.X.Label.Text = "Likelihood"
	p.Y.Label.Text = "Impact"
	p.X.Tick.Marker = plot.ConstantTicks(levelTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(levelTicks)

	p.Add(plotter.NewHeatMap(grid, palette.Heat(12, 1)))

	var pts plotter.XYs
	var labels []string
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			text := fmt.Sprintf("%d risks", counts[i][j])
			if exposure[i][j] > 0 {
				text = fmt.Sprintf("%d risks\n$%.1fM", counts[i][j], exposure[i][j]/1_000_000)
			}
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(i)})
			labels = append(labels, text)
		}
	}
	cellLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return "", err
	}
	for i := range cellLabels.TextStyle {
		cellLabels.TextStyle[i].XAlign = draw.XCenter
		cellLabels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(cellLabels)

	return savePlot(p, dir, "risk_heatmap.png", 6*vg.Inch, 5*vg.Inch)
}
