// Package kpi computes the flat indicator set shown on the dashboard.
//
// Totals (revenue, registrations, participants, events, average price and the
// top event) come from the run's Snapshot and are never recounted from the
// deduplicated rows. Demographics come from the deduplicated Dataset, where
// each participant appears once.
package kpi

import (
	"fmt"
	"time"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/internal/domain/stats"
	"github.com/okian/thaidash/internal/domain/types"
)

// Indicator keys.
const (
	TotalRegistrations = "total_registrations"
	TotalParticipants  = "total_participants"
	TotalRevenue       = "total_revenue"
	AvgTicketPrice     = "avg_ticket_price"
	UniqueEvents       = "unique_events"
	TopEvent           = "top_event"
	TopEventCount      = "top_event_count"
	TopEvents          = "top_events"

	MedianTicketPrice    = "median_ticket_price"
	MaleParticipants     = "male_participants"
	FemaleParticipants   = "female_participants"
	LGBTQParticipants    = "lgbtq_participants"
	AvgAge               = "avg_age"
	MedianAge            = "median_age"
	ParticipantsWithAge  = "participants_with_age"
	TopEventCategory     = "top_event_category"
	TopDistanceCategory  = "top_distance_category"
	EarliestRegistration = "earliest_registration"
	LatestRegistration   = "latest_registration"

	MalePercentage     = "male_percentage"
	FemalePercentage   = "female_percentage"
	LGBTQPercentage    = "lgbtq_percentage"
	AgeKnownPercentage = "age_known_percentage"
)

// NotAvailable is reported for a mode that has no non-null values.
const NotAvailable = "N/A"

const percent = 100

// KPIs is a flat mapping of indicator name to value.
type KPIs map[string]any

// Calculate derives the indicator set for one pipeline result. It never
// modifies res. Percentage keys are only emitted when the snapshot counts at
// least one participant.
func Calculate(res *pipeline.Result) KPIs {
	k := KPIs{}
	if res == nil {
		return k
	}
	snap := res.Snapshot
	fromSnapshot(k, snap)

	ds := res.Dataset
	if ds == nil {
		ds = model.NewDataset(nil, nil, nil)
	}
	if ds.Has(model.ColTicketTypePrice) {
		prices := make([]float64, 0, ds.Len())
		for i := range ds.Records {
			prices = append(prices, ds.Records[i].TicketPrice)
		}
		median, _ := stats.Median(prices)
		k[MedianTicketPrice] = median
	} else {
		k[MedianTicketPrice] = 0.0
	}

	if ds.Has(model.ColGender) {
		counts := make(map[types.Gender]int, len(types.Genders()))
		for i := range ds.Records {
			counts[ds.Records[i].Gender]++
		}
		k[MaleParticipants] = counts[types.GenderMale]
		k[FemaleParticipants] = counts[types.GenderFemale]
		k[LGBTQParticipants] = counts[types.GenderLGBTQ]
	}

	if ds.Has(model.ColAge) {
		ages := make([]float64, 0, ds.Len())
		for i := range ds.Records {
			if a := ds.Records[i].Age; a != nil {
				ages = append(ages, float64(*a))
			}
		}
		k[ParticipantsWithAge] = len(ages)
		if mean, ok := stats.Mean(ages); ok {
			k[AvgAge] = mean
		}
		if median, ok := stats.Median(ages); ok {
			k[MedianAge] = median
		}
	}

	if ds.Has(model.ColEventCategory) {
		k[TopEventCategory] = mode(ds.Records, types.EventCategories(),
			func(r *model.Record) (types.EventCategory, bool) { return r.EventCategory, true })
	}
	if ds.Has(model.ColDistanceCategory) {
		k[TopDistanceCategory] = mode(ds.Records, types.DistanceCategories(),
			func(r *model.Record) (types.DistanceCategory, bool) { return r.DistanceCategory, r.DistanceCategory.Valid() })
	}

	if ds.Has(model.ColRegisterDate) {
		if lo, hi, ok := dateSpan(ds.Records); ok {
			k[EarliestRegistration] = lo.Format(time.DateOnly)
			k[LatestRegistration] = hi.Format(time.DateOnly)
		}
	}

	addPercentages(k, snap.UniqueParticipants())
	return k
}

func fromSnapshot(k KPIs, snap pipeline.Snapshot) {
	k[TotalRegistrations] = snap.TotalRegistrations()
	k[TotalParticipants] = snap.UniqueParticipants()
	k[TotalRevenue] = snap.TotalRevenue()
	k[AvgTicketPrice] = snap.AvgPricePerRegistration()
	k[UniqueEvents] = snap.UniqueEvents()
	if top, ok := snap.TopEvent(); ok {
		k[TopEvent] = top.Label
		k[TopEventCount] = top.Count
		k[TopEvents] = snap.TopEvents()
	}
}

func addPercentages(k KPIs, total int) {
	if total <= 0 {
		return
	}
	pairs := []struct{ count, pct string }{
		{MaleParticipants, MalePercentage},
		{FemaleParticipants, FemalePercentage},
		{LGBTQParticipants, LGBTQPercentage},
		{ParticipantsWithAge, AgeKnownPercentage},
	}
	for _, p := range pairs {
		if n, ok := k[p.count].(int); ok {
			k[p.pct] = float64(n) / float64(total) * percent
		}
	}
}

// mode returns the label of the most frequent value. Ties go to the value
// that comes first in order.
func mode[T interface {
	comparable
	fmt.Stringer
}](records []model.Record, order []T, get func(*model.Record) (T, bool)) string {
	counts := make(map[T]int, len(order))
	for i := range records {
		if v, ok := get(&records[i]); ok {
			counts[v]++
		}
	}
	best, bestN := -1, 0
	for i, v := range order {
		if counts[v] > bestN {
			best, bestN = i, counts[v]
		}
	}
	if best < 0 {
		return NotAvailable
	}
	return order[best].String()
}

func dateSpan(records []model.Record) (lo, hi time.Time, ok bool) {
	for i := range records {
		d := records[i].RegisterDate
		if d == nil {
			continue
		}
		if !ok || d.Before(lo) {
			lo = *d
		}
		if !ok || d.After(hi) {
			hi = *d
		}
		ok = true
	}
	return lo, hi, ok
}
