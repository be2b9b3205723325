package api

import (
	"net/http"

	service "github.com/okian/hooplab/internal/app"
)

// TeamsDependencies defines the interface for team listings.
type TeamsDependencies interface {
	Teams() ([]string, error)
	Players(team string) ([]service.PlayerSummary, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGetTeams handles GET /teams requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, _ *http.Request) {
	teams, err := h.deps.Teams()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if teams == nil {
		teams = []string{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGetTeamPlayers handles GET /teams/{abbr}/players requests.
func (h *TeamsHandler) HandleGetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.deps.Players(r.PathValue("abbr"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}
