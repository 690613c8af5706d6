// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/thaidash/internal/adapters/repository"
	service "github.com/okian/thaidash/internal/app"
	"github.com/okian/thaidash/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze returns the cleaned dataset and its metrics for the data
	// currently being served.
	Analyze(ctx context.Context) (*service.Analysis, error)

	// Export renders the cleaned dataset of an analysis as CSV.
	Export(ctx context.Context, w io.Writer, a *service.Analysis) error

	// Upload and Reload replace the served dataset.
	Upload(ctx context.Context, r io.Reader) (service.LoadOutcome, error)
	Reload(ctx context.Context) (service.LoadOutcome, error)
}

const (
	defaultTopN           = 10
	defaultMaxTopLimit    = 100
	defaultMaxUploadBytes = 64 << 20
)

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	analyticsHandler    *AnalyticsHandler
	topHandler          *TopHandler
	participantsHandler *ParticipantsHandler
	exportHandler       *ExportHandler
	datasetsHandler     *DatasetsHandler
}

// Option configures the Server.
type Option func(*serverConfig)

type serverConfig struct {
	topN           int
	maxTopLimit    int
	maxUploadBytes int64
}

// WithTopN sets the ranking size used when ?limit is absent.
func WithTopN(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.topN = n
		}
	}
}

// WithMaxTopLimit caps ?limit on ranking and participant listings.
func WithMaxTopLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxTopLimit = n
		}
	}
}

// WithMaxUploadBytes caps dataset upload bodies.
func WithMaxUploadBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxUploadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{
		topN:           defaultTopN,
		maxTopLimit:    defaultMaxTopLimit,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.topN > cfg.maxTopLimit {
		cfg.topN = cfg.maxTopLimit
	}
	limits := newLimitParser(cfg.topN, cfg.maxTopLimit)
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		analyticsHandler:    NewAnalyticsHandler(deps),
		topHandler:          NewTopHandler(deps, limits),
		participantsHandler: NewParticipantsHandler(deps, limits),
		exportHandler:       NewExportHandler(deps),
		datasetsHandler:     NewDatasetsHandler(deps, cfg.maxUploadBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/kpis", MetricsMiddleware(s.analyticsHandler.HandleKPIs, "kpis"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.analyticsHandler.HandleSummary, "summary"))
	mux.HandleFunc("/report", MetricsMiddleware(s.analyticsHandler.HandleReport, "report"))
	mux.HandleFunc("/revenue/daily", MetricsMiddleware(s.analyticsHandler.HandleDailyRevenue, "revenue_daily"))
	mux.HandleFunc("/top", MetricsMiddleware(s.topHandler.HandleGetTop, "top"))
	mux.HandleFunc("/participants/inactive", MetricsMiddleware(s.participantsHandler.HandleInactive, "participants_inactive"))
	mux.HandleFunc("/participants/least-active", MetricsMiddleware(s.participantsHandler.HandleLeastActive, "participants_least_active"))
	mux.HandleFunc("/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/datasets", MetricsMiddleware(s.datasetsHandler.HandleUpload, "datasets"))
	mux.HandleFunc("/datasets/reload", MetricsMiddleware(s.datasetsHandler.HandleReload, "datasets_reload"))
}

// sourceHeader carries the data origin on responses without a JSON body.
const sourceHeader = "X-Data-Source"

// envelope wraps every analytics payload with the origin of its data, so a
// client can tell synthetic sample data from real registrations.
type envelope struct {
	Source    service.Origin `json:"source"`
	Synthetic bool           `json:"synthetic"`
	Data      any            `json:"data"`
}

func newEnvelope(o service.LoadOutcome, data any) envelope {
	return envelope{Source: o.Source, Synthetic: o.Synthetic, Data: data}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, o service.LoadOutcome, data any) {
	w.Header().Set(sourceHeader, string(o.Source))
	writeJSON(w, http.StatusOK, newEnvelope(o, data))
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates upstream errors to a status and code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, ranking.ErrUnknownColumn):
		writeError(w, http.StatusNotFound, "unknown_column", Wrap(op, err))
	case errors.Is(err, repository.ErrSourceUnavailable), errors.Is(err, repository.ErrMalformed):
		writeError(w, http.StatusBadRequest, "bad_dataset", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "canceled", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
