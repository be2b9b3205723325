package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/hooplab/internal/app"
)

// PlayersDependencies defines the interface for player analysis.
type PlayersDependencies interface {
	Analyze(ctx context.Context, name string) (*service.Analysis, error)
}

// PlayersHandler handles player report requests.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetReport handles GET /players/{name}/report requests.
func (h *PlayersHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	a, err := h.deps.Analyze(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
