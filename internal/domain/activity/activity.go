// Package activity summarizes how often and how recently each participant
// registered. It works on every registration, before deduplication: after
// deduplication each participant has exactly one row and the counts are
// meaningless.
package activity

import (
	"math"
	"sort"
	"time"
)

const hoursPerDay = 24

// Participant aggregates the registrations of one participant identifier.
type Participant struct {
	ID               string     `json:"id"`
	LastRegistration *time.Time `json:"last_registration,omitempty"`
	Registrations    int        `json:"registration_count"`
}

// Status is a Participant evaluated against a reference time.
type Status struct {
	Participant
	DaysSinceLast *int `json:"days_since_last,omitempty"`
	Inactive      bool `json:"inactive"`
}

// Registration is the minimal view of a row needed for the summary.
type Registration struct {
	ID   string
	Date *time.Time
}

// Summarize groups registrations by participant, sorted by identifier.
// Rows with a blank identifier are ignored; rows with an unknown date still
// count as registrations.
func Summarize(regs []Registration) []Participant {
	byID := make(map[string]*Participant)
	for _, r := range regs {
		if r.ID == "" {
			continue
		}
		p, ok := byID[r.ID]
		if !ok {
			p = &Participant{ID: r.ID}
			byID[r.ID] = p
		}
		p.Registrations++
		if r.Date != nil && (p.LastRegistration == nil || r.Date.After(*p.LastRegistration)) {
			d := *r.Date
			p.LastRegistration = &d
		}
	}

	out := make([]Participant, 0, len(byID))
	for _, p := range byID {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Evaluate computes days since the last registration and flags participants
// idle for more than thresholdDays. A participant with no known date is never
// flagged inactive.
func Evaluate(ps []Participant, ref time.Time, thresholdDays int) []Status {
	out := make([]Status, len(ps))
	for i, p := range ps {
		out[i] = Status{Participant: p}
		if p.LastRegistration == nil {
			continue
		}
		days := int(math.Floor(ref.Sub(*p.LastRegistration).Hours() / hoursPerDay))
		out[i].DaysSinceLast = &days
		out[i].Inactive = days > thresholdDays
	}
	return out
}

// Inactive returns inactive participants, longest idle first, at most limit.
func Inactive(statuses []Status, limit int) []Status {
	out := make([]Status, 0)
	for _, s := range statuses {
		if s.Inactive {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].DaysSinceLast > *out[j].DaysSinceLast })
	return head(out, limit)
}

// LeastActive returns participants with the fewest registrations first;
// ties go to the longest idle, and unknown dates sort last.
func LeastActive(statuses []Status, limit int) []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Registrations != b.Registrations {
			return a.Registrations < b.Registrations
		}
		switch {
		case a.DaysSinceLast == nil:
			return false
		case b.DaysSinceLast == nil:
			return true
		default:
			return *a.DaysSinceLast > *b.DaysSinceLast
		}
	})
	return head(out, limit)
}

func head(s []Status, limit int) []Status {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
