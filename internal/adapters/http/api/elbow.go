package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/hooplab/internal/domain/cluster"
)

// ElbowDependencies defines the interface for inertia sweeps.
type ElbowDependencies interface {
	Sweep(ctx context.Context, maxK int) ([]cluster.InertiaPoint, error)
}

// ElbowHandler serves elbow-method sweeps.
type ElbowHandler struct {
	deps ElbowDependencies
}

// NewElbowHandler creates a new elbow handler.
func NewElbowHandler(deps ElbowDependencies) *ElbowHandler {
	return &ElbowHandler{deps: deps}
}

// HandleGetElbow handles GET /elbow?max_k= requests. A missing max_k uses the
// configured bound.
func (h *ElbowHandler) HandleGetElbow(w http.ResponseWriter, r *http.Request) {
	maxK := 0
	if raw := r.URL.Query().Get("max_k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: max_k must be a positive integer", ErrBadRequest))
			return
		}
		maxK = v
	}
	pts, err := h.deps.Sweep(r.Context(), maxK)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pts)
}
