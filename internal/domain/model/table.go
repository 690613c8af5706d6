package model

import "strings"

// Table is raw registration input: a header plus one string row per ticket
// purchase. Cells are kept exactly as read; a short row reads as empty cells.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a Table and indexes its header. Header names are trimmed;
// when a name repeats, the first column wins.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{
		Header: make([]string, len(header)),
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	_, ok := t.Index(col)
	return ok
}

// Index returns the position of col in the header.
func (t *Table) Index(col string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if t.index == nil {
		for i, h := range t.Header {
			if h == col {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := t.index[col]
	return i, ok
}

// Value returns the cell at row for col. ok is false when the column is absent.
func (t *Table) Value(row int, col string) (string, bool) {
	i, ok := t.Index(col)
	if !ok {
		return "", false
	}
	return cell(t.Rows[row], i), true
}

// Clone returns a deep copy so callers can rewrite cells without touching t.
// Every row of the copy is exactly as wide as the header.
func (t *Table) Clone() *Table {
	return t.Without()
}

// Without returns a deep copy of t minus the named columns.
func (t *Table) Without(cols ...string) *Table {
	drop := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		drop[c] = struct{}{}
	}
	var keep []int
	header := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if _, ok := drop[h]; ok {
			continue
		}
		keep = append(keep, i)
		header = append(header, h)
	}
	rows := make([][]string, len(t.Rows))
	for r, src := range t.Rows {
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = cell(src, i)
		}
		rows[r] = row
	}
	return NewTable(header, rows)
}

// Dataset wraps the raw rows, uncleaned and without derived columns, so a
// table can be written wherever a Dataset is expected.
func (t *Table) Dataset() *Dataset {
	c := t.Clone()
	records := make([]Record, len(c.Rows))
	for i, row := range c.Rows {
		records[i] = Record{Values: row}
	}
	return NewDataset(c.Header, nil, records)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
