package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Age bounds; ages outside the range are treated as unknown, not clamped.
const (
	MinAge      = 0
	MaxAge      = 120
	daysPerYear = 365.25
	hoursPerDay = 24
	dateLayout  = "2006-01-02"
	stampLayout = "2006-01-02 15:04:05"
)

// Layouts tried before falling back to cast's broader format list.
// Month-first slashed dates are tried before day-first ones.
var dateLayouts = []string{
	dateLayout,
	"2006/01/02",
	stampLayout,
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"01/02/2006",
	"02/01/2006",
	"01/02/2006 15:04:05",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2006.01.02",
	"20060102",
	"2006/1/2",
	"2006-1-2",
	"2006/1/2 15:04:05",
	"2006-1-2 15:04:05",
	"1/2/2006",
	"2/1/2006",
	"1/2/2006 15:04:05",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006 15:04:05",
	"Jan 2, 2006 15:04:05",
}

// Date parses a calendar date in any of the tolerated formats.
func Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a parsed date for CSV output: date only at midnight,
// date and time otherwise.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(stampLayout)
}

// Age returns whole years between birth and ref:
// floor(floor(days) / 365.25). ok is false outside [MinAge, MaxAge].
func Age(birth, ref time.Time) (int, bool) {
	days := math.Floor(ref.Sub(birth).Hours() / hoursPerDay)
	years := days / daysPerYear
	if years < MinAge || years > MaxAge {
		return 0, false
	}
	return int(years), true
}
