// Package stats holds the descriptive statistics shared by the KPI and
// summary reports. Empty input yields ok=false rather than NaN, so results
// can always be encoded as JSON.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), true
}

// Median returns the middle value of xs, averaging the two middle values
// for an even count. xs is not reordered.
func Median(xs []float64) (float64, bool) {
	n := len(xs)
	if n == 0 {
		return 0, false
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	if n%2 == 1 {
		return s[n/2], true
	}
	return (s[n/2-1] + s[n/2]) / 2, true
}

// StdDev returns the sample standard deviation (n-1 denominator).
// It needs at least two values.
func StdDev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	mean, _ := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1)), true
}

// MinMax returns the smallest and largest value of xs.
func MinMax(xs []float64) (lo, hi float64, ok bool) {
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi, true
}

// Numeric is the min/max/mean/median/std block of one numeric column.
type Numeric struct {
	Count  int      `json:"count"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Std    *float64 `json:"std"`
}

// Describe summarizes xs. ok is false when xs is empty.
func Describe(xs []float64) (Numeric, bool) {
	if len(xs) == 0 {
		return Numeric{}, false
	}
	n := Numeric{Count: len(xs)}
	n.Min, n.Max, _ = MinMax(xs)
	n.Mean, _ = Mean(xs)
	n.Median, _ = Median(xs)
	if sd, ok := StdDev(xs); ok {
		n.Std = &sd
	}
	return n, true
}
