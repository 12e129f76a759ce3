package report

import (
	"fmt"
	"regexp"
	"strings"
)

var orderedItemRe = regexp.MustCompile(`^\d+\.\s*`)

// Status markers that get wrapped in a badge span inside table cells.
var badgeMarkers = []string{"🟢", "🟠", "🔴", "✅", "⚠️", "🔥", "⚙️"}

func badgeClass(text string) string {
	switch {
	case strings.Contains(text, "🟢"), strings.Contains(text, "✅"),
		strings.Contains(text, "Complete"), strings.Contains(text, "Positive"):
		return "badge ok"
	case strings.Contains(text, "🟠"), strings.Contains(text, "⚠️"),
		strings.Contains(text, "At Risk"), strings.Contains(text, "High"),
		strings.Contains(text, "Concern"):
		return "badge warn"
	case strings.Contains(text, "🔴"), strings.Contains(text, "🔥"),
		strings.Contains(text, "Critical"), strings.Contains(text, "Urgent"):
		return "badge danger"
	}
	return "badge"
}

func hasBadgeMarker(cell string) bool {
	for _, m := range badgeMarkers {
		if strings.Contains(cell, m) {
			return true
		}
	}
	return false
}

// tableRow converts one "| a | b |" markdown row to an HTML row, wrapping
// status cells in badge spans.
func tableRow(row string, header bool) string {
	fields := strings.Split(row, "|")
	if len(fields) < 3 {
		return ""
	}
	cells := fields[1 : len(fields)-1]

	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		cell := strings.TrimSpace(c)
		switch {
		case header:
			fmt.Fprintf(&b, "<th>%s</th>", cell)
		case hasBadgeMarker(cell):
			fmt.Fprintf(&b, `<td><span class="%s">%s</span></td>`, badgeClass(cell), cell)
		default:
			fmt.Fprintf(&b, "<td>%s</td>", cell)
		}
	}
	b.WriteString("</tr>")
	return b.String()
}

// sectionConverter rewrites the Markdown summary into the card/section
// structure the executive template styles. It tracks open table, list, and
// card elements line by line.
type sectionConverter struct {
	parts   []string
	inTable bool
	inCard  bool
	listTag string // "ul" or "ol" while a list is open, else ""
}

func (c *sectionConverter) add(parts ...string) {
	c.parts = append(c.parts, parts...)
}

func (c *sectionConverter) closeTable() {
	if c.inTable {
		c.add("</tbody>", "</table>")
		c.inTable = false
	}
}

func (c *sectionConverter) closeList() {
	if c.listTag != "" {
		c.add("</" + c.listTag + ">")
		c.listTag = ""
	}
}

func (c *sectionConverter) closeCard() {
	if c.inCard {
		c.add("</div>")
		c.inCard = false
	}
}

func (c *sectionConverter) openCard(class, title string) {
	c.add(fmt.Sprintf(`<div class="%s">`, class), fmt.Sprintf("<h3>%s</h3>", title))
	c.inCard = true
}

// heading maps a "###" section heading onto the template layout: the
// dashboard and highlight cards form tier 1, risks open tier 2, and
// stakeholders onward form tier 3.
func (c *sectionConverter) heading(title string) {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "at-a-glance"), strings.Contains(lower, "dashboard"):
		c.openCard("card", title)
	case strings.Contains(lower, "executive highlight"):
		c.add(`<div class="grid-2">`)
		c.openCard("card", title)
	case strings.Contains(lower, "key win"):
		// Second column of the highlights grid.
		c.openCard("card", title)
	case strings.Contains(lower, "risk"):
		c.add("</div>", // close the highlights grid
			`<section class="section">`,
			"<h2>Tier 2 — Why it matters?</h2>")
		c.openCard("card", title)
	case strings.Contains(lower, "stakeholder"):
		c.add("</div>", // close the previous section body
			`<section class="section">`,
			"<h2>Tier 3 — What's next?</h2>",
			`<div class="twocol">`)
		c.openCard("card alt", title)
	case strings.Contains(lower, "next week"), strings.Contains(lower, "executive action"):
		c.openCard("card", title)
	case strings.Contains(lower, "metric"):
		c.add("</div>", "</section>", `<section class="section">`)
		c.openCard("card", title)
	default:
		c.openCard("card", title)
	}
}

// ConvertSections converts the Markdown summary to the HTML body fragment
// the executive template embeds: cards, tiered sections, tables with badge
// cells, and clean lists.
func ConvertSections(markdown string) string {
	c := &sectionConverter{}
	lines := strings.Split(markdown, "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "###"):
			c.closeList()
			c.closeTable()
			c.closeCard()
			c.heading(strings.TrimSpace(strings.TrimLeft(line, "#")))

		case strings.HasPrefix(trimmed, "|"):
			if !c.inTable {
				c.add(`<table class="table">`)
				c.inTable = true
				if i+1 < len(lines) && strings.Contains(lines[i+1], "---") {
					c.add("<thead>", tableRow(line, true), "</thead>", "<tbody>")
					i++ // skip the separator row
				} else {
					c.add("<tbody>", tableRow(line, false))
				}
			} else {
				c.add(tableRow(line, false))
			}

		case c.inTable && !strings.Contains(line, "|"):
			c.closeTable()

		case strings.HasPrefix(trimmed, "- "):
			if c.listTag == "" {
				c.add(`<ul class="clean">`)
				c.listTag = "ul"
			}
			c.add(fmt.Sprintf("<li>%s</li>", trimmed[2:]))

		case orderedItemRe.MatchString(trimmed):
			if c.listTag == "" {
				c.add(`<ol class="clean">`)
				c.listTag = "ol"
			}
			c.add(fmt.Sprintf("<li>%s</li>", orderedItemRe.ReplaceAllString(trimmed, "")))

		default:
			if trimmed != "" {
				c.closeList()
			}
			switch {
			case strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") && len(trimmed) > 4:
				// Subsection label (Top 3 Priorities, Decisions Needed).
				c.add(fmt.Sprintf(`<div class="sub">%s</div>`, strings.TrimSpace(strings.Trim(trimmed, "*"))))
			case strings.HasPrefix(trimmed, ">"):
				c.add(fmt.Sprintf("<p><em>%s</em></p>", strings.TrimSpace(trimmed[1:])))
			case strings.HasPrefix(trimmed, "<"):
				// Raw HTML (the prompt emits the heatmap table directly).
				c.add(trimmed)
			case trimmed != "" && !strings.HasPrefix(line, "#"):
				c.add(fmt.Sprintf("<p>%s</p>", trimmed))
			}
		}
	}

	c.closeList()
	c.closeTable()
	c.closeCard()
	// Balance the grid/twocol and section still open from the last tier.
	c.add("</div>", "</section>")

	return strings.Join(c.parts, "\n")
}
