package pipeline

import (
	"sort"
	"time"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/normalize"
	"github.com/okian/thaidash/internal/domain/types"
)

// DailyRevenue is the revenue of all registrations made on one day.
type DailyRevenue struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	Registrations int     `json:"registrations"`
}

// Snapshot holds whole-population metrics, taken from the untouched input
// before any row is deduplicated. It is a value with unexported fields:
// nothing downstream can alter it, and accessors hand out copies.
type Snapshot struct {
	totalRegistrations int
	uniqueParticipants int
	totalRevenue       float64
	avgPrice           float64
	uniqueEvents       int
	topN               int
	eventCounts        []types.CategoryCount
	dailyRevenue       []DailyRevenue

	hasPrice  bool
	hasEvents bool
}

// TotalRegistrations is the number of input rows.
func (s Snapshot) TotalRegistrations() int { return s.totalRegistrations }

// UniqueParticipants is the number of distinct non-blank identifiers, or
// the row count when the input has no identifier column.
func (s Snapshot) UniqueParticipants() int { return s.uniqueParticipants }

// TotalRevenue is the sum of all coerced ticket prices, unparsable as 0.
func (s Snapshot) TotalRevenue() float64 { return s.totalRevenue }

// AvgPricePerRegistration is TotalRevenue over TotalRegistrations.
func (s Snapshot) AvgPricePerRegistration() float64 { return s.avgPrice }

// UniqueEvents is the number of distinct non-blank event names.
func (s Snapshot) UniqueEvents() int { return s.uniqueEvents }

// HasPrice reports whether the input carried a price column.
func (s Snapshot) HasPrice() bool { return s.hasPrice }

// HasEvents reports whether the input carried an event name column.
func (s Snapshot) HasEvents() bool { return s.hasEvents }

// EventCounts ranks every event by registrations, most popular first.
func (s Snapshot) EventCounts() []types.CategoryCount {
	return append([]types.CategoryCount(nil), s.eventCounts...)
}

// TopEvents returns the configured top-N slice of EventCounts.
func (s Snapshot) TopEvents() []types.CategoryCount {
	n := s.topN
	if n <= 0 || n > len(s.eventCounts) {
		n = len(s.eventCounts)
	}
	return append([]types.CategoryCount(nil), s.eventCounts[:n]...)
}

// TopEvent returns the most registered event.
func (s Snapshot) TopEvent() (types.CategoryCount, bool) {
	if len(s.eventCounts) == 0 {
		return types.CategoryCount{}, false
	}
	return s.eventCounts[0], true
}

// DailyRevenue returns revenue per registration day in date order.
// Rows with an unparsable registration date are left out.
func (s Snapshot) DailyRevenue() []DailyRevenue {
	return append([]DailyRevenue(nil), s.dailyRevenue...)
}

// takeSnapshot reads raw without modifying it.
func takeSnapshot(raw *model.Table, topN int) Snapshot {
	s := Snapshot{totalRegistrations: raw.Len(), topN: topN}

	if idx, ok := raw.Index(model.ColID); ok {
		ids := make(map[string]struct{})
		for _, row := range raw.Rows {
			if id := trimmedCell(row, idx); id != "" {
				ids[id] = struct{}{}
			}
		}
		s.uniqueParticipants = len(ids)
	} else {
		s.uniqueParticipants = s.totalRegistrations
	}

	priceIdx, hasPrice := raw.Index(model.ColTicketTypePrice)
	s.hasPrice = hasPrice
	if hasPrice {
		for _, row := range raw.Rows {
			if p, ok := normalize.Price(rawCell(row, priceIdx)); ok {
				s.totalRevenue += p
			}
		}
		if s.totalRegistrations > 0 {
			s.avgPrice = s.totalRevenue / float64(s.totalRegistrations)
		}
	}

	if idx, ok := raw.Index(model.ColEventName); ok {
		s.hasEvents = true
		s.eventCounts = rankEvents(raw.Rows, idx)
		s.uniqueEvents = len(s.eventCounts)
	}

	if dateIdx, ok := raw.Index(model.ColRegisterDate); ok && hasPrice {
		s.dailyRevenue = dailyRevenue(raw.Rows, dateIdx, priceIdx)
	}
	return s
}

// rankEvents counts rows per event name, ties broken by first appearance.
func rankEvents(rows [][]string, idx int) []types.CategoryCount {
	pos := make(map[string]int)
	var counts []types.CategoryCount
	for _, row := range rows {
		name := normalize.EventName(rawCell(row, idx))
		if name == "" {
			continue
		}
		i, ok := pos[name]
		if !ok {
			i = len(counts)
			pos[name] = i
			counts = append(counts, types.CategoryCount{Label: name})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

func dailyRevenue(rows [][]string, dateIdx, priceIdx int) []DailyRevenue {
	byDay := make(map[string]*DailyRevenue)
	for _, row := range rows {
		t, ok := normalize.Date(rawCell(row, dateIdx))
		if !ok {
			continue
		}
		key := t.Format(time.DateOnly)
		d, ok := byDay[key]
		if !ok {
			d = &DailyRevenue{Date: key}
			byDay[key] = d
		}
		p, _ := normalize.Price(rawCell(row, priceIdx))
		d.Revenue += p
		d.Registrations++
	}
	out := make([]DailyRevenue, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
