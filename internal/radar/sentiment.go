package radar

import "fmt"

// Status labels for the CX posture KPI card.
const (
	StatusStable   = "Stable"
	StatusElevated = "Elevated"
	StatusCritical = "Critical"
)

// Rule-of-thumb thresholds for the posture label. Sentiment below the
// comfort band is elevated; below the floor, or a double-digit escalation
// count, is critical.
const (
	sentimentComfortFloor = 65
	sentimentCriticalLine = 60
	escalationCriticalMax = 10
)

// deltaText renders a percentage change as "▲ 4.2% vs prior period".
// A zero prior yields "" because the percentage is undefined.
func deltaText(current, prior float64) string {
	if prior == 0 {
		return ""
	}
	pct := (current - prior) / prior * 100.0
	arrow := "■"
	switch {
	case pct > 0:
		arrow = "▲"
	case pct < 0:
		arrow = "▼"
	}
	return fmt.Sprintf("%s %.1f%% vs prior period", arrow, pct)
}

const noPriorPeriod = "No prior period for comparison"

// SentimentKPIs derives the sentiment/escalation KPI card values from the
// trend. Zero-valued when the trend is empty.
type SentimentKPIs struct {
	Current          float64
	SentimentDelta   string
	Escalations      int
	EscalationsDelta string

	StatusLabel    string
	StatusSubtitle string
}

// SentimentKPIs computes current values, week-over-week delta text, and the
// CX posture label.
func (c *Context) SentimentKPIs() SentimentKPIs {
	k := SentimentKPIs{
		StatusLabel:    StatusStable,
		StatusSubtitle: "Within normal CX risk envelope",
	}
	if len(c.Sentiment) == 0 {
		return k
	}

	latest := c.Sentiment[len(c.Sentiment)-1]
	k.Current = latest.Score
	k.Escalations = latest.Escalations

	if len(c.Sentiment) >= 2 {
		prev := c.Sentiment[len(c.Sentiment)-2]
		k.SentimentDelta = deltaText(latest.Score, prev.Score)
		k.EscalationsDelta = deltaText(float64(latest.Escalations), float64(prev.Escalations))
	} else {
		k.SentimentDelta = noPriorPeriod
		k.EscalationsDelta = noPriorPeriod
	}

	if k.Current < sentimentComfortFloor {
		k.StatusLabel = StatusElevated
		k.StatusSubtitle = "Sentiment below comfort band; monitor closely."
	}
	if k.Current < sentimentCriticalLine || k.Escalations > escalationCriticalMax {
		k.StatusLabel = StatusCritical
		k.StatusSubtitle = "High escalation volume and deteriorating sentiment."
	}

	return k
}

// BaselineDropPct returns the percentage drop of the latest sentiment score
// from the first (baseline) week. Positive means decline; zero when fewer
// than one week of data or a zero baseline.
func (c *Context) BaselineDropPct() float64 {
	if len(c.Sentiment) == 0 {
		return 0
	}
	baseline := c.Sentiment[0].Score
	if baseline == 0 {
		return 0
	}
	current := c.Sentiment[len(c.Sentiment)-1].Score
	return (baseline - current) / baseline * 100.0
}
