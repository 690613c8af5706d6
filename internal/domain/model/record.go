package model

import (
	"time"

	"github.com/okian/thaidash/internal/domain/types"
)

// Record is one cleaned registration row.
//
// Values holds the source columns in header order, with normalized columns
// (event name, price, dates, gender) rewritten to their canonical text.
// Typed fields carry the parsed values; nil pointers mean "unknown".
type Record struct {
	Values []string

	TicketPrice  float64
	PriceParsed  bool
	RegisterDate *time.Time
	BirthDate    *time.Time
	Age          *int

	Gender           types.Gender
	AgeGroup         types.AgeGroup
	PriceTier        types.PriceTier
	EventCategory    types.EventCategory
	Distance         string
	DistanceCategory types.DistanceCategory
}

// Column is a derived output column and how to render it from a record.
type Column struct {
	Name   string
	Format func(*Record) string
}

// Dataset is the deduplicated, one-row-per-participant cleaned data.
// It is produced once per pipeline run and must be treated as read-only.
type Dataset struct {
	Header  []string
	Derived []Column
	Records []Record

	index map[string]int
}

// NewDataset assembles a Dataset over already-cleaned records.
func NewDataset(header []string, derived []Column, records []Record) *Dataset {
	d := &Dataset{Header: header, Derived: derived, Records: records, index: make(map[string]int, len(header))}
	for i, h := range header {
		if _, dup := d.index[h]; !dup {
			d.index[h] = i
		}
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Columns returns source then derived column names, in export order.
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(d.Header)+len(d.Derived))
	cols = append(cols, d.Header...)
	for _, c := range d.Derived {
		cols = append(cols, c.Name)
	}
	return cols
}

// Has reports whether col is a source or derived column.
func (d *Dataset) Has(col string) bool {
	_, ok := d.Accessor(col)
	return ok
}

// Accessor returns a function reading col from a record.
func (d *Dataset) Accessor(col string) (func(*Record) string, bool) {
	if i, ok := d.index[col]; ok {
		return func(r *Record) string { return cell(r.Values, i) }, true
	}
	for _, c := range d.Derived {
		if c.Name == col {
			return c.Format, true
		}
	}
	return nil, false
}

// Row renders record i in Columns order.
func (d *Dataset) Row(i int) []string {
	r := &d.Records[i]
	out := make([]string, 0, len(d.Header)+len(d.Derived))
	for j := range d.Header {
		out = append(out, cell(r.Values, j))
	}
	for _, c := range d.Derived {
		out = append(out, c.Format(r))
	}
	return out
}
