package api

import (
	"errors"
	"net/http"
)

// TopHandler handles top-category ranking requests.
type TopHandler struct {
	deps   AnalyticsDependencies
	limits limitParser
}

// NewTopHandler creates a new top-category handler.
func NewTopHandler(deps AnalyticsDependencies, limits limitParser) *TopHandler {
	return &TopHandler{deps: deps, limits: limits}
}

// HandleGetTop handles GET /top?column=C&limit=N requests.
func (h *TopHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_top"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := h.limits.parseTop(r.URL.Query())
	if err != nil {
		writeLimitError(w, op, err)
		return
	}
	a, err := h.deps.Analyze(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	ranked, err := a.Top(q.Column, q.Limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeData(w, a.Outcome, ranked)
}

func writeLimitError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrLimitExceeded) {
		writeError(w, http.StatusBadRequest, "limit_exceeded", Wrap(op, err))
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
}
