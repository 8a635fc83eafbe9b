package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/okian/mvdstats/internal/domain/match"
	"github.com/okian/mvdstats/internal/domain/types"
)

// DemoDependencies defines the interface for demo uploads.
type DemoDependencies interface {
	Submit(ctx context.Context, data []byte) (types.Upload, error)
}

// DemosHandler handles demo uploads.
type DemosHandler struct {
	deps     DemoDependencies
	maxBytes int
}

// NewDemosHandler creates a new demos handler.
func NewDemosHandler(deps DemoDependencies, maxBytes int) *DemosHandler {
	return &DemosHandler{deps: deps, maxBytes: maxBytes}
}

// HandlePostDemo handles POST /demos requests. The body is the raw MVD file.
// A new demo is answered with 202, a known one with 200 and its existing id.
func (h *DemosHandler) HandlePostDemo(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_demo"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, int64(h.maxBytes))
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, WrapKind(op, match.ErrTooLarge, err))
			return
		}
		writeErr(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	up, err := h.deps.Submit(r.Context(), data)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	status := http.StatusAccepted
	if up.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, up)
}
