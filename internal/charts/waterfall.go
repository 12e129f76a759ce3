package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/damonayoung/status-summarizer-bot/internal/ebitda"
)

const waterfallBarHalfWidth = 0.3

func waterfallBarColor(kind string, value float64) color.RGBA {
	switch {
	case kind == ebitda.KindBase || kind == ebitda.KindFinal:
		return waterfallGrey
	case value < 0:
		return waterfallRed
	default:
		return waterfallGreen
	}
}

// barRect builds the rectangle polygon for one waterfall bar.
func barRect(x, bottom, top float64) plotter.XYs {
	return plotter.XYs{
		{X: x - waterfallBarHalfWidth, Y: bottom},
		{X: x + waterfallBarHalfWidth, Y: bottom},
		{X: x + waterfallBarHalfWidth, Y: top},
		{X: x - waterfallBarHalfWidth, Y: top},
	}
}

// waterfallChart draws the EBITDA waterfall: baseline and final bars from
// zero, movements floating at the running total, red for negative and
// green for positive.
func waterfallChart(w *ebitda.Waterfall, dir string) (string, error) {
	if w == nil || len(w.Components) == 0 {
		return "", nil
	}

	p := plot.New()
	p.Title.Text = "EBITDA Waterfall Analysis"
	p.Y.Label.Text = "EBITDA ($M)"
	p.Add(plotter.NewGrid())

	labelPts := make(plotter.XYs, 0, len(w.Components))
	labelText := make([]string, 0, len(w.Components))
	names := make([]string, 0, len(w.Components))

	running := 0.0
	yMax := 0.0
	for i, comp := range w.Components {
		var bottom, top float64
		switch comp.Kind {
		case ebitda.KindBase, ebitda.KindFinal:
			bottom, top = 0, comp.Value
			running = comp.Value
		default:
			if comp.Value < 0 {
				bottom, top = running+comp.Value, running
			} else {
				bottom, top = running, running+comp.Value
			}
			running += comp.Value
		}
		yMax = math.Max(yMax, top)

		rect, err := plotter.NewPolygon(barRect(float64(i), bottom, top))
		if err != nil {
			return "", err
		}
		rect.Color = waterfallBarColor(comp.Kind, comp.Value)
		rect.LineStyle.Color = color.Black
		rect.LineStyle.Width = vg.Points(0.5)
		p.Add(rect)

		var text string
		switch comp.Kind {
		case ebitda.KindBase, ebitda.KindFinal:
			text = fmt.Sprintf("$%.1fM", math.Abs(comp.Value))
		default:
			if comp.Value < 0 {
				text = fmt.Sprintf("-$%.1fM", math.Abs(comp.Value))
			} else {
				text = fmt.Sprintf("+$%.1fM", comp.Value)
			}
		}
		labelPts = append(labelPts, plotter.XY{X: float64(i), Y: top + yMax*0.01})
		labelText = append(labelText, text)
		names = append(names, comp.Label)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labelText})
	if err != nil {
		return "", err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(labels)

	p.Y.Min = 0
	p.Y.Max = yMax * 1.15
	p.NominalX(names...)

	return savePlot(p, dir, "ebitda_waterfall.png", 10*vg.Inch, 5*vg.Inch)
}
