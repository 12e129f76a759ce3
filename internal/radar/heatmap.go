package radar

import (
	"fmt"
	"strings"
)

// heatmapLevels orders the impact/likelihood axes from low to critical.
var heatmapLevels = []string{"low", "med", "high", "crit"}

// Heatmap is the impact×likelihood exposure grid. Cells is keyed by
// "{impact}_{likelihood}" using the short level names; every one of the 16
// buckets is present, holding an accumulated exposure label ("$8.0M", or
// "$0M" when empty).
type Heatmap struct {
	Cells map[string]string `json:"cells"`

	// Exposure share of the high+critical, medium, and low impact rows,
	// formatted as whole percentages ("62%"). "~0%" when there is no
	// exposure at all.
	HighShare string `json:"high_share"`
	MedShare  string `json:"med_share"`
	LowShare  string `json:"low_share"`
}

// heatLevel normalizes an impact or likelihood label to its short axis
// name. Unknown labels keep their first three characters; exposure under a
// label that still matches no bucket is dropped from the grid.
func heatLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "critical":
		return "crit"
	case "medium":
		return "med"
	case "low", "med", "high", "crit":
		return s
	}
	if len(s) > 3 {
		return s[:3]
	}
	return s
}

// onGrid reports whether a normalized level key is one of the 4 axis levels.
// Exposure under an off-grid key stays out of both the cells and the row
// share sums.
func onGrid(key string) bool {
	for _, level := range heatmapLevels {
		if level == key {
			return true
		}
	}
	return false
}

// BuildHeatmap accumulates risk exposure into the 4×4 grid and computes the
// per-row exposure shares. Impact falls back to severity for registers
// without a separate impact column.
func (c *Context) BuildHeatmap() Heatmap {
	sums := map[string]float64{}
	rowSums := map[string]float64{}

	for _, r := range c.Risks {
		impact := r.Impact
		if impact == "" {
			impact = r.Severity
		}
		impactKey := heatLevel(impact)
		likeKey := heatLevel(r.Likelihood)
		if !onGrid(impactKey) || !onGrid(likeKey) {
			continue
		}
		sums[impactKey+"_"+likeKey] += r.ExposureMillions
		rowSums[impactKey] += r.ExposureMillions
	}

	cells := make(map[string]string, 16)
	for _, impact := range heatmapLevels {
		for _, likelihood := range heatmapLevels {
			key := impact + "_" + likelihood
			if m, ok := sums[key]; ok && m != 0 {
				cells[key] = fmt.Sprintf("$%.1fM", m)
			} else {
				cells[key] = "$0M"
			}
		}
	}

	total := c.TotalExposureMillions()
	share := func(millions float64) string {
		if total == 0 {
			return "~0%"
		}
		return fmt.Sprintf("%.0f%%", millions/total*100.0)
	}

	return Heatmap{
		Cells:     cells,
		HighShare: share(rowSums["high"] + rowSums["crit"]),
		MedShare:  share(rowSums["med"]),
		LowShare:  share(rowSums["low"]),
	}
}

// Cell returns the exposure label for one impact/likelihood pair. Impact
// and likelihood take the full or short level names.
func (h Heatmap) Cell(impact, likelihood string) string {
	return h.Cells[heatLevel(impact)+"_"+heatLevel(likelihood)]
}
