package sampledata

import "time"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRows sets how many registrations are generated.
func WithRows(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.rows = n
		}
	}
}

// WithSeed sets the random seed. Equal seeds give equal tables.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithMissingRate sets the share of rows whose city and postal code are blank.
func WithMissingRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.missingRate = rate
		}
	}
}

// WithRepeatRate sets the share of rows that re-register an earlier
// participant for another event.
func WithRepeatRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate < 1 {
			g.repeatRate = rate
		}
	}
}

// WithStartDate sets the first day of the registration window.
func WithStartDate(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.start = t
		}
	}
}
