package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Price coerces a ticket price cell to baht. ok is false for blank or
// non-numeric cells; callers fill those with 0 before aggregating.
func Price(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatPrice renders a price the way it is written back to CSV.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
