// Package pipeline cleans raw registrations into an analysis-ready dataset.
//
// A run takes whole-population metrics from the untouched input, normalizes
// and classifies a working copy, then deduplicates it to one row per
// participant. The metrics travel next to the dataset as an immutable
// Snapshot and are the only source for revenue and registration totals.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/thaidash/internal/domain/activity"
	"github.com/okian/thaidash/internal/domain/dedupe"
	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/pkg/logger"
	"github.com/okian/thaidash/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultTopEvents = 10
	msPerSecond      = 1e3
)

// expectedColumns are the source columns the features are built on.
var expectedColumns = []string{
	model.ColID,
	model.ColEventName,
	model.ColTicketTypeName,
	model.ColTicketTypePrice,
	model.ColGender,
	model.ColBirthDate,
	model.ColRegisterDate,
}

// fallbackKeyColumns identify a participant when there is no ID column.
var fallbackKeyColumns = []string{
	model.ColEventName,
	model.ColRegisterDate,
	model.ColGender,
	model.ColBirthDate,
}

// Report describes how a run degraded. Nothing in it is an error.
type Report struct {
	RowsIn            int            `json:"rows_in"`
	RowsKept          int            `json:"rows_kept"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	DedupeKey         []string       `json:"dedupe_key"`
	MissingColumns    []string       `json:"missing_columns,omitempty"`
	SkippedFeatures   []string       `json:"skipped_features,omitempty"`
	NullCells         map[string]int `json:"null_cells,omitempty"`
	ReferenceTime     time.Time      `json:"reference_time"`
}

// Result is the complete output of one run.
type Result struct {
	Dataset      *model.Dataset
	Snapshot     Snapshot
	Report       Report
	Participants []activity.Participant
}

// Pipeline runs the cleaning steps. It holds configuration only; runs share
// no state.
type Pipeline struct {
	logger    logger.Logger
	now       func() time.Time
	topEvents int
}

// New creates a Pipeline with configuration options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		now:       time.Now,
		topEvents: defaultTopEvents,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run cleans raw. raw is never modified. On error no partial result is
// returned.
func (p *Pipeline) Run(ctx context.Context, raw *model.Table) (*Result, error) {
	const op = "pipeline.run"
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilInput)
	}
	start := time.Now()
	ref := p.now()

	// 1. whole-population metrics, before anything else touches the rows.
	snap := takeSnapshot(raw, p.topEvents)

	report := Report{
		RowsIn:        raw.Len(),
		NullCells:     make(map[string]int),
		ReferenceTime: ref,
	}
	for _, col := range expectedColumns {
		if !raw.Has(col) {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// 2. normalize and classify a working copy. Stale copies of derived
	// columns (a re-imported export) are replaced, not duplicated.
	active, skipped := plan(raw.Has)
	report.SkippedFeatures = skipped
	work := raw.Without(derivedNames(active)...)

	cols := make(map[string]int, len(work.Header))
	for _, h := range work.Header {
		i, _ := work.Index(h)
		cols[h] = i
	}
	records := make([]model.Record, work.Len())
	for i := range work.Rows {
		records[i].Values = work.Rows[i]
		r := &row{
			rec:  &records[i],
			cols: cols,
			ref:  ref,
			null: func(col string) { report.NullCells[col]++ },
		}
		for _, f := range active {
			if f.derive != nil {
				f.derive(r)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	participants := summarizeActivity(records, cols)

	// 3. one row per participant.
	key, keyCols := dedupeKey(work.Has, cols)
	report.DedupeKey = keyCols
	deduper := dedupe.NewInMemoryDeduper(dedupe.WithCapacityHint(snap.UniqueParticipants()))
	kept, dropped := dedupe.KeepFirst(ctx, deduper, indexes(len(records)), func(i int) string {
		return key(i, records[i].Values)
	})
	unique := make([]model.Record, len(kept))
	for j, i := range kept {
		unique[j] = records[i]
	}
	report.RowsKept = len(unique)
	report.DuplicatesRemoved = dropped
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// 4. attach the snapshot next to, not inside, the dataset.
	res := &Result{
		Dataset:      model.NewDataset(work.Header, derivedColumns(active), unique),
		Snapshot:     snap,
		Report:       report,
		Participants: participants,
	}

	elapsed := time.Since(start)
	p.observe(ctx, res, elapsed)
	return res, nil
}

func (p *Pipeline) observe(ctx context.Context, res *Result, elapsed time.Duration) {
	metrics.RecordPipelineRun(elapsed.Seconds() * msPerSecond)
	metrics.RecordRowsIngested(res.Report.RowsIn)
	metrics.RecordDuplicatesRemoved(res.Report.DuplicatesRemoved)
	for col, n := range res.Report.NullCells {
		metrics.RecordNullCells(col, n)
	}
	for _, name := range res.Report.SkippedFeatures {
		metrics.RecordFeatureSkipped(name)
	}

	if p.logger == nil {
		return
	}
	p.logger.Info(ctx, "pipeline run complete",
		logger.Int("rows_in", res.Report.RowsIn),
		logger.Int("rows_kept", res.Report.RowsKept),
		logger.Int("duplicates_removed", res.Report.DuplicatesRemoved),
		logger.Int("unique_participants", res.Snapshot.UniqueParticipants()),
		logger.Float64("total_revenue", res.Snapshot.TotalRevenue()),
		logger.Duration("elapsed", elapsed),
	)
	for _, col := range res.Report.MissingColumns {
		p.logger.Debug(ctx, "column missing; dependent features skipped", logger.String("column", col))
	}
	nullCols := make([]string, 0, len(res.Report.NullCells))
	for col := range res.Report.NullCells {
		nullCols = append(nullCols, col)
	}
	sort.Strings(nullCols)
	for _, col := range nullCols {
		p.logger.Debug(ctx, "unparsable cells set to null",
			logger.String("column", col), logger.Int("count", res.Report.NullCells[col]))
	}
}

// dedupeKey picks the participant identity: the ID column when present,
// otherwise whichever fallback columns exist. With none of them, every row
// is its own participant.
func dedupeKey(has func(string) bool, cols map[string]int) (func(int, []string) string, []string) {
	if has(model.ColID) {
		k := dedupe.ByIdentifier(cols[model.ColID])
		return func(_ int, v []string) string { return k(v) }, []string{model.ColID}
	}

	var keyCols []string
	var idx []int
	for _, c := range fallbackKeyColumns {
		if has(c) {
			keyCols = append(keyCols, c)
			idx = append(idx, cols[c])
		}
	}
	if len(idx) == 0 {
		return func(i int, _ []string) string { return strconv.Itoa(i) }, nil
	}
	k := dedupe.ByComposite(idx...)
	return func(_ int, v []string) string { return k(v) }, keyCols
}

func summarizeActivity(records []model.Record, cols map[string]int) []activity.Participant {
	idIdx, ok := cols[model.ColID]
	if !ok {
		return nil
	}
	regs := make([]activity.Registration, len(records))
	for i := range records {
		regs[i] = activity.Registration{
			ID:   trimmedCell(records[i].Values, idIdx),
			Date: records[i].RegisterDate,
		}
	}
	return activity.Summarize(regs)
}

func derivedColumns(active []feature) []model.Column {
	var out []model.Column
	for _, f := range active {
		if f.column != "" {
			out = append(out, model.Column{Name: f.column, Format: f.format})
		}
	}
	return out
}

func derivedNames(active []feature) []string {
	var out []string
	for _, f := range active {
		if f.column != "" {
			out = append(out, f.column)
		}
	}
	return out
}

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func rawCell(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}

func trimmedCell(row []string, i int) string {
	return strings.TrimSpace(rawCell(row, i))
}
