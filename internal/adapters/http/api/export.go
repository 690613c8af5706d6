package api

import (
	"context"
	"io"
	"net/http"

	service "github.com/okian/thaidash/internal/app"
	"github.com/okian/thaidash/pkg/logger"
)

// ExportDependencies defines the interface for CSV export.
type ExportDependencies interface {
	Analyze(ctx context.Context) (*service.Analysis, error)
	Export(ctx context.Context, w io.Writer, a *service.Analysis) error
}

// ExportHandler streams the cleaned dataset as CSV.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /export requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a, err := h.deps.Analyze(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cleaned_data.csv"`)
	w.Header().Set(sourceHeader, string(a.Outcome.Source))
	w.WriteHeader(http.StatusOK)
	// Headers are gone; a failed write can only be logged.
	if err := h.deps.Export(r.Context(), w, a); err != nil {
		logger.Get().Error(r.Context(), "export failed", logger.String("op", op), logger.Error(err))
	}
}
