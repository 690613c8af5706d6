package api

import (
	"context"
	"net/http"

	service "github.com/okian/thaidash/internal/app"
)

// AnalyticsDependencies defines the interface for dataset analysis.
type AnalyticsDependencies interface {
	Analyze(ctx context.Context) (*service.Analysis, error)
}

// AnalyticsHandler serves the whole-dataset views: KPIs, summary, run report
// and daily revenue.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

// HandleKPIs handles GET /kpis requests.
func (h *AnalyticsHandler) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "api.get_kpis", func(a *service.Analysis) any { return a.KPIs() })
}

// HandleSummary handles GET /summary requests.
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "api.get_summary", func(a *service.Analysis) any { return a.Summary() })
}

// HandleReport handles GET /report requests: how the last run degraded.
func (h *AnalyticsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "api.get_report", func(a *service.Analysis) any { return a.Result.Report })
}

// HandleDailyRevenue handles GET /revenue/daily requests.
func (h *AnalyticsHandler) HandleDailyRevenue(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "api.get_daily_revenue", func(a *service.Analysis) any { return a.DailyRevenue() })
}

func (h *AnalyticsHandler) serve(w http.ResponseWriter, r *http.Request, op string, view func(*service.Analysis) any) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a, err := h.deps.Analyze(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeData(w, a.Outcome, view(a))
}
