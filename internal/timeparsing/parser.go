// Package timeparsing provides layered parsing for risk target dates.
//
// Register CSVs carry dates in MM/DD/YY, but hand-edited rows show up with
// ISO dates, compact durations (+2w), or natural language ("next friday").
// Parsing tries each layer in order:
//  1. Absolute dates (MM/DD/YY, MM/DD/YYYY, YYYY-MM-DD, RFC3339)
//  2. Compact duration (+6h, -1d, +2w)
//  3. Natural language (tomorrow, next monday)
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// absoluteLayouts are tried in order. MM/DD/YY first: it is the register's
// native export format.
var absoluteLayouts = []string{
	"01/02/06",
	"01/02/2006",
	"2006-01-02",
	time.RFC3339,
}

// compactDurationRe matches compact duration patterns: [+-]?(\d+)([hdwmy])
var compactDurationRe = regexp.MustCompile(`^([+-]?)(\d+)([hdwmy])$`)

// ParseTargetDate parses a risk target date through the layered parsers.
// now anchors relative expressions.
func ParseTargetDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty target date")
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if IsCompactDuration(s) {
		return ParseCompactDuration(s, now)
	}

	if t, err := ParseNaturalLanguage(s, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized target date: %q", s)
}

// ParseCompactDuration parses compact duration syntax and returns the
// resulting time relative to now.
//
// Units:
//   - h = hours
//   - d = days
//   - w = weeks
//   - m = months
//   - y = years
//
// Examples: "+6h", "-1d", "+2w", "3m" (no sign = positive).
func ParseCompactDuration(s string, now time.Time) (time.Time, error) {
	matches := compactDurationRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("not a compact duration: %q", s)
	}

	sign := matches[1]
	amountStr := matches[2]
	unit := matches[3]

	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration amount: %q", amountStr)
	}

	if sign == "-" {
		amount = -amount
	}

	return applyDuration(now, amount, unit), nil
}

// applyDuration applies the given amount and unit to the base time.
func applyDuration(base time.Time, amount int, unit string) time.Time {
	switch unit {
	case "h":
		return base.Add(time.Duration(amount) * time.Hour)
	case "d":
		return base.AddDate(0, 0, amount)
	case "w":
		return base.AddDate(0, 0, amount*7)
	case "m":
		return base.AddDate(0, amount, 0)
	case "y":
		return base.AddDate(amount, 0, 0)
	default:
		// Should not happen given regex, but return base unchanged
		return base
	}
}

// IsCompactDuration returns true if the string matches compact duration syntax.
func IsCompactDuration(s string) bool {
	return compactDurationRe.MatchString(s)
}
