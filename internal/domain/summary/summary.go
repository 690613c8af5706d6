// Package summary profiles a cleaned dataset column by column.
package summary

import (
	"strings"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/stats"
)

const percent = 100

// Column profiles one column. A blank cell counts as missing.
type Column struct {
	Name           string  `json:"name"`
	Missing        int     `json:"missing"`
	MissingPercent float64 `json:"missing_percent"`
	Distinct       int     `json:"distinct"`
}

// Summary is the profile of a whole dataset.
type Summary struct {
	Rows    int                      `json:"rows"`
	Columns []Column                 `json:"columns"`
	Numeric map[string]stats.Numeric `json:"numeric"`
}

// Of profiles ds in export column order. Numeric statistics are given for
// ticket price and age when those columns exist and hold values.
func Of(ds *model.Dataset) Summary {
	s := Summary{Numeric: map[string]stats.Numeric{}}
	if ds == nil {
		return s
	}
	s.Rows = ds.Len()

	for _, name := range ds.Columns() {
		get, _ := ds.Accessor(name)
		c := Column{Name: name}
		seen := make(map[string]struct{})
		for i := range ds.Records {
			v := strings.TrimSpace(get(&ds.Records[i]))
			if v == "" {
				c.Missing++
				continue
			}
			seen[v] = struct{}{}
		}
		c.Distinct = len(seen)
		if s.Rows > 0 {
			c.MissingPercent = float64(c.Missing) / float64(s.Rows) * percent
		}
		s.Columns = append(s.Columns, c)
	}

	if ds.Has(model.ColTicketTypePrice) {
		prices := make([]float64, 0, ds.Len())
		for i := range ds.Records {
			prices = append(prices, ds.Records[i].TicketPrice)
		}
		if n, ok := stats.Describe(prices); ok {
			s.Numeric[model.ColTicketTypePrice] = n
		}
	}
	if ds.Has(model.ColAge) {
		var ages []float64
		for i := range ds.Records {
			if a := ds.Records[i].Age; a != nil {
				ages = append(ages, float64(*a))
			}
		}
		if n, ok := stats.Describe(ages); ok {
			s.Numeric[model.ColAge] = n
		}
	}
	return s
}
