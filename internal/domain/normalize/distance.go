// Package normalize turns noisy registration cells into canonical values.
//
// Every function here is pure. A cell that cannot be coerced yields ok=false
// (or a designated default) and never an error: one bad cell must not stop
// a batch.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// DistanceOther is returned when no distance can be read from a ticket label.
const DistanceOther = "Other"

var distancePattern = regexp.MustCompile(`(\d+\.?\d*)\s*(K|KM)`)

type distanceRule struct {
	matches func(s string) bool
	label   string
}

// Keyword rules, applied in order when the label carries no "<number>K".
var distanceRules = []distanceRule{
	{func(s string) bool {
		return strings.Contains(s, "MARATHON") && !strings.Contains(s, "HALF") && !strings.Contains(s, "MINI")
	}, "42.2K"},
	{func(s string) bool { return strings.Contains(s, "HALF") }, "21.1K"},
	{func(s string) bool { return strings.Contains(s, "FULL") && strings.Contains(s, "MARATHON") }, "42.2K"},
	{func(s string) bool { return strings.Contains(s, "24K") || strings.Contains(s, "24 KM") }, "24K"},
	{func(s string) bool { return strings.Contains(s, "21K") }, "21.1K"},
	{func(s string) bool { return strings.Contains(s, "10K") }, "10K"},
	{func(s string) bool { return strings.Contains(s, "5K") }, "5K"},
	{func(s string) bool { return strings.Contains(s, "3K") }, "3K"},
}

// Distance extracts a race distance such as "5K" or "21.1K" from a free-text
// ticket label. A numeric "<n>K"/"<n> KM" match always wins over keywords.
func Distance(ticket string) string {
	s := strings.ToUpper(strings.TrimSpace(ticket))
	if s == "" {
		return DistanceOther
	}

	if m := distancePattern.FindStringSubmatch(s); m != nil {
		return formatKilometres(m[1]) + "K"
	}

	for _, r := range distanceRules {
		if r.matches(s) {
			return r.label
		}
	}
	return DistanceOther
}

// formatKilometres renders integral values without a fraction ("5.0" -> "5").
func formatKilometres(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
