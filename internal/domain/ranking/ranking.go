// Package ranking produces top-N category tables.
package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/internal/domain/types"
)

// ErrUnknownColumn is returned when the dataset has no such column.
var ErrUnknownColumn = errors.New("unknown column")

// Top returns the n most frequent values of column, most frequent first,
// ties in order of first appearance. n <= 0 returns every value.
//
// Event names are ranked from the snapshot's whole-population counts so that
// repeat registrations still count towards an event's popularity. Every other
// column is ranked over the deduplicated dataset. Blank cells are not counted.
func Top(res *pipeline.Result, column string, n int) ([]types.CategoryCount, error) {
	const op = "ranking.top"
	if res == nil || res.Dataset == nil {
		return nil, fmt.Errorf("%s: %s: %w", op, column, ErrUnknownColumn)
	}

	if column == model.ColEventName && res.Snapshot.HasEvents() {
		return head(res.Snapshot.EventCounts(), n), nil
	}

	get, ok := res.Dataset.Accessor(column)
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", op, column, ErrUnknownColumn)
	}
	return head(count(res.Dataset.Records, get), n), nil
}

func count(records []model.Record, get func(*model.Record) string) []types.CategoryCount {
	pos := make(map[string]int)
	var out []types.CategoryCount
	for i := range records {
		v := strings.TrimSpace(get(&records[i]))
		if v == "" {
			continue
		}
		j, ok := pos[v]
		if !ok {
			j = len(out)
			pos[v] = j
			out = append(out, types.CategoryCount{Label: v})
		}
		out[j].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

func head(cs []types.CategoryCount, n int) []types.CategoryCount {
	if n > 0 && n < len(cs) {
		return cs[:n]
	}
	if cs == nil {
		return []types.CategoryCount{}
	}
	return cs
}
