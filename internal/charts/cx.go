package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

const sentimentBaseline = 75.0

// sentimentTrendChart draws the sentiment index as a line over the weekly
// series, with a dashed baseline reference at 75.
func sentimentTrendChart(weeks []radar.SentimentWeek, dir string) (string, error) {
	if len(weeks) == 0 {
		return "", nil
	}

	p := plot.New()
	p.Title.Text = "CX Sentiment Index Trend"
	p.X.Label.Text = "Week"
	p.Y.Label.Text = "Sentiment Index"
	p.Y.Min, p.Y.Max = 0, 100
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(weeks))
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		pts[i] = plotter.XY{X: float64(i), Y: w.Score}
		labels[i] = w.WeekStart
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.Color = colorSky
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Sentiment Index", line)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", err
	}
	scatter.GlyphStyle.Color = colorSky
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	baseline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: sentimentBaseline},
		{X: float64(len(weeks) - 1), Y: sentimentBaseline},
	})
	if err != nil {
		return "", err
	}
	baseline.Color = colorGreen
	baseline.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(baseline)
	p.Legend.Add("Baseline (75)", baseline)

	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(labels...)

	return savePlot(p, dir, "sentiment_trend.png", 6.5*vg.Inch, 3*vg.Inch)
}

// complaintsEscalationsChart draws complaints and escalations as grouped
// bars per week.
func complaintsEscalationsChart(weeks []radar.SentimentWeek, dir string) (string, error) {
	if len(weeks) == 0 {
		return "", nil
	}

	complaints := make(plotter.Values, len(weeks))
	escalations := make(plotter.Values, len(weeks))
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		complaints[i] = float64(w.Complaints)
		escalations[i] = float64(w.Escalations)
		labels[i] = w.WeekStart
	}

	p := plot.New()
	p.Title.Text = "Complaints & Escalations per Week"
	p.X.Label.Text = "Week"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	barWidth := vg.Points(12)

	complaintBars, err := plotter.NewBarChart(complaints, barWidth)
	if err != nil {
		return "", err
	}
	complaintBars.Color = colorAmber
	complaintBars.Offset = -barWidth / 2

	escalationBars, err := plotter.NewBarChart(escalations, barWidth)
	if err != nil {
		return "", err
	}
	escalationBars.Color = colorRed
	escalationBars.Offset = barWidth / 2

	p.Add(complaintBars, escalationBars)
	p.Legend.Add("Complaints", complaintBars)
	p.Legend.Add("Escalations", escalationBars)
	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(labels...)

	return savePlot(p, dir, "complaints_escalations.png", 6.5*vg.Inch, 3*vg.Inch)
}
