// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/hooplab/internal/app"
	"github.com/okian/hooplab/internal/domain/cluster"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	StatsProvider

	Current() *service.Run
	Sweep(ctx context.Context, maxK int) ([]cluster.InertiaPoint, error)
	Teams() ([]string, error)
	Players(team string) ([]service.PlayerSummary, error)
	Analyze(ctx context.Context, name string) (*service.Analysis, error)
}

// Server wires HTTP routes for the analysis API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	clustersHandler *ClustersHandler
	elbowHandler    *ElbowHandler
	teamsHandler    *TeamsHandler
	playersHandler  *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		clustersHandler: NewClustersHandler(deps),
		elbowHandler:    NewElbowHandler(deps),
		teamsHandler:    NewTeamsHandler(deps),
		playersHandler:  NewPlayersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /clusters", MetricsMiddleware(s.clustersHandler.HandleGetClusters, "clusters"))
	mux.HandleFunc("GET /elbow", MetricsMiddleware(s.elbowHandler.HandleGetElbow, "elbow"))
	mux.HandleFunc("GET /teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
	mux.HandleFunc("GET /teams/{abbr}/players", MetricsMiddleware(s.teamsHandler.HandleGetTeamPlayers, "team_players"))
	mux.HandleFunc("GET /players/{name}/report", MetricsMiddleware(s.playersHandler.HandleGetReport, "player_report"))
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

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNoRun):
		writeError(w, http.StatusServiceUnavailable, "no_run", err)
	case errors.Is(err, cluster.ErrInvalidK):
		writeError(w, http.StatusBadRequest, "invalid_k", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
