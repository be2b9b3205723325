package api

import (
	"net/http"

	service "github.com/okian/hooplab/internal/app"
)

// ClustersDependencies defines the interface for reading the current run.
type ClustersDependencies interface {
	Current() *service.Run
}

// ClustersHandler serves the cluster profile of the current run.
type ClustersHandler struct {
	deps ClustersDependencies
}

// NewClustersHandler creates a new clusters handler.
func NewClustersHandler(deps ClustersDependencies) *ClustersHandler {
	return &ClustersHandler{deps: deps}
}

type clusterView struct {
	ID    int                `json:"id"`
	Role  string             `json:"role"`
	Size  int                `json:"size"`
	Means map[string]float64 `json:"means"`
}

type clustersResponse struct {
	RunID    string             `json:"run_id"`
	K        int                `json:"k"`
	Inertia  float64            `json:"inertia"`
	Columns  []string           `json:"columns"`
	Clusters []clusterView      `json:"clusters"`
	Overall  map[string]float64 `json:"overall"`
}

// HandleGetClusters handles GET /clusters requests.
func (h *ClustersHandler) HandleGetClusters(w http.ResponseWriter, _ *http.Request) {
	run := h.deps.Current()
	if run == nil {
		writeServiceError(w, service.ErrNoRun)
		return
	}
	resp := clustersResponse{
		RunID:    run.ID,
		K:        run.Assignment.K,
		Inertia:  run.Assignment.Inertia,
		Columns:  run.Columns,
		Clusters: make([]clusterView, 0, run.Profile.K()),
		Overall:  run.Profile.Overall,
	}
	for _, c := range run.Profile.Clusters {
		resp.Clusters = append(resp.Clusters, clusterView{ID: c.ID, Role: run.Roles[c.ID], Size: c.Size, Means: c.Means})
	}
	writeJSON(w, http.StatusOK, resp)
}
