package service

import (
	"time"

	"github.com/okian/thaidash/internal/domain/activity"
	"github.com/okian/thaidash/internal/domain/kpi"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/internal/domain/ranking"
	"github.com/okian/thaidash/internal/domain/summary"
	"github.com/okian/thaidash/internal/domain/types"
)

// Origin names where the loaded registrations came from.
type Origin string

// Origins.
const (
	OriginFile      Origin = "file"
	OriginUpload    Origin = "upload"
	OriginSynthetic Origin = "synthetic"
)

// LoadOutcome describes the dataset currently being served.
type LoadOutcome struct {
	Source    Origin    `json:"source"`
	Path      string    `json:"path,omitempty"`
	Synthetic bool      `json:"synthetic"`
	Reason    string    `json:"reason,omitempty"`
	Rows      int       `json:"rows"`
	LoadedAt  time.Time `json:"loaded_at"`

	cause error
}

// Err returns the error that forced a synthetic fallback, if any.
func (o LoadOutcome) Err() error { return o.cause }

// Analysis is one pipeline result together with the load it was computed
// from. It is read-only and may be shared between requests.
type Analysis struct {
	Outcome LoadOutcome
	Result  *pipeline.Result

	inactiveDays int
}

// NewAnalysis pairs a result with its load outcome.
func NewAnalysis(outcome LoadOutcome, res *pipeline.Result, inactiveDays int) *Analysis {
	return &Analysis{Outcome: outcome, Result: res, inactiveDays: inactiveDays}
}

// KPIs computes the indicator set.
func (a *Analysis) KPIs() kpi.KPIs { return kpi.Calculate(a.Result) }

// Top ranks the values of column.
func (a *Analysis) Top(column string, n int) ([]types.CategoryCount, error) {
	return ranking.Top(a.Result, column, n)
}

// Summary describes missing values, distinct counts and numeric columns.
func (a *Analysis) Summary() summary.Summary { return summary.Of(a.Result.Dataset) }

// DailyRevenue is the revenue series over all registrations.
func (a *Analysis) DailyRevenue() []pipeline.DailyRevenue { return a.Result.Snapshot.DailyRevenue() }

// Activity evaluates every participant against the run's reference time.
func (a *Analysis) Activity() []activity.Status {
	return activity.Evaluate(a.Result.Participants, a.Result.Report.ReferenceTime, a.inactiveDays)
}

// Inactive lists dormant participants, most dormant first.
func (a *Analysis) Inactive(limit int) []activity.Status {
	return activity.Inactive(a.Activity(), limit)
}

// LeastActive lists participants with the fewest registrations first.
func (a *Analysis) LeastActive(limit int) []activity.Status {
	return activity.LeastActive(a.Activity(), limit)
}
