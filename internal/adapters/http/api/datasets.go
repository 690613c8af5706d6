package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	service "github.com/okian/thaidash/internal/app"
)

// DatasetDependencies defines the interface for replacing the served dataset.
type DatasetDependencies interface {
	Upload(ctx context.Context, r io.Reader) (service.LoadOutcome, error)
	Reload(ctx context.Context) (service.LoadOutcome, error)
}

const uploadField = "file"

// DatasetsHandler handles dataset uploads and reloads.
type DatasetsHandler struct {
	deps     DatasetDependencies
	maxBytes int64
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps DatasetDependencies, maxBytes int64) *DatasetsHandler {
	return &DatasetsHandler{deps: deps, maxBytes: maxBytes}
}

// HandleUpload handles POST /datasets requests. The body is either the raw
// CSV or a multipart form with the CSV in the "file" field.
func (h *DatasetsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_dataset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	body, closeBody, err := uploadBody(r)
	if err != nil {
		writeUploadError(w, op, err)
		return
	}
	defer closeBody()

	outcome, err := h.deps.Upload(r.Context(), body)
	if err != nil {
		writeUploadError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

// HandleReload handles POST /datasets/reload requests.
func (h *DatasetsHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload_dataset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	outcome, err := h.deps.Reload(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func uploadBody(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}
	f, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeUploadError(w http.ResponseWriter, op string, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrPayloadTooLarge, err))
	case errors.Is(err, http.ErrMissingFile):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeServiceError(w, op, err)
	}
}
