package api

import (
	"net/http"

	service "github.com/okian/thaidash/internal/app"
	"github.com/okian/thaidash/internal/domain/activity"
)

// ParticipantsHandler serves participant activity listings.
type ParticipantsHandler struct {
	deps   AnalyticsDependencies
	limits limitParser
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps AnalyticsDependencies, limits limitParser) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps, limits: limits}
}

// HandleInactive handles GET /participants/inactive?limit=N requests.
func (h *ParticipantsHandler) HandleInactive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.get_inactive", (*service.Analysis).Inactive)
}

// HandleLeastActive handles GET /participants/least-active?limit=N requests.
func (h *ParticipantsHandler) HandleLeastActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.get_least_active", (*service.Analysis).LeastActive)
}

func (h *ParticipantsHandler) list(w http.ResponseWriter, r *http.Request, op string, sel func(*service.Analysis, int) []activity.Status) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, err := h.limits.parse(r.URL.Query())
	if err != nil {
		writeLimitError(w, op, err)
		return
	}
	a, err := h.deps.Analyze(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeData(w, a.Outcome, sel(a, n))
}
