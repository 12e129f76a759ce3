package charts

import (
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/damonayoung/status-summarizer-bot/internal/radar"
)

func stakeholderColor(typ string) color.RGBA {
	switch typ {
	case "Sponsor":
		return colorGreen
	case "Blocker":
		return colorRed
	default:
		return colorGray
	}
}

// initials collapses "Dana Wu" to "DW" (max 3 letters).
func initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		if count == 3 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		count++
	}
	return b.String()
}

// stakeholderMapChart draws the influence×support scatter with quadrant
// dividers and labels. Points are colored by stakeholder type and tagged
// with initials.
func stakeholderMapChart(stakeholders []radar.Stakeholder, dir string) (string, error) {
	if len(stakeholders) == 0 {
		return "", nil
	}

	pts := make(plotter.XYs, len(stakeholders))
	for i, s := range stakeholders {
		pts[i] = plotter.XY{X: levelValue(s.Support), Y: levelValue(s.Influence)}
	}

	p := plot.New()
	p.Title.Text = "Stakeholder Influence x Support Map"
	p.X.Label.Text = "Support Level"
	p.Y.Label.Text = "Influence Level"
	p.X.Min, p.X.Max = 0.5, 3.5
	p.Y.Min, p.Y.Max = 0.5, 3.5
	p.X.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 1, Label: "Low"}, {Value: 2, Label: "Medium"}, {Value: 3, Label: "High"},
	})
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 1, Label: "Low"}, {Value: 2, Label: "Medium"}, {Value: 3, Label: "High"},
	})
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", err
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  stakeholderColor(stakeholders[i].Type),
			Radius: vg.Points(9),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	// Quadrant dividers.
	for _, div := range []plotter.XYs{
		{{X: 0.5, Y: 2.5}, {X: 3.5, Y: 2.5}},
		{{X: 2.5, Y: 0.5}, {X: 2.5, Y: 3.5}},
	} {
		line, err := plotter.NewLine(div)
		if err != nil {
			return "", err
		}
		line.Color = colorGray
		line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(line)
	}

	// Point initials plus the four quadrant names.
	labelPts := make(plotter.XYs, 0, len(stakeholders)+4)
	labelText := make([]string, 0, len(stakeholders)+4)
	for i, s := range stakeholders {
		labelPts = append(labelPts, pts[i])
		labelText = append(labelText, initials(s.Name))
	}
	quadrants := []struct {
		x, y float64
		name string
	}{
		{1.25, 3.25, "Blockers"},
		{3.25, 3.25, "Champions"},
		{3.25, 1.25, "Advocates"},
		{1.25, 1.25, "Observers"},
	}
	for _, q := range quadrants {
		labelPts = append(labelPts, plotter.XY{X: q.x, Y: q.y})
		labelText = append(labelText, q.name)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labelText})
	if err != nil {
		return "", err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		if i < len(stakeholders) {
			labels.TextStyle[i].Color = color.White
		} else {
			labels.TextStyle[i].Color = colorGray
		}
	}
	p.Add(labels)

	return savePlot(p, dir, "stakeholder_map.png", 6*vg.Inch, 5*vg.Inch)
}
