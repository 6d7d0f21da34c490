package handler

import (
	"context"
	"net/http"

	"github.com/pokeagent/pokeagent/internal/api/middleware"
	"github.com/pokeagent/pokeagent/internal/api/response"
	"github.com/pokeagent/pokeagent/internal/pokeapi"
)

// DBPinger checks database reachability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// PokeAPIChecker probes the species API.
type PokeAPIChecker interface {
	CheckConnectivity(ctx context.Context) pokeapi.ConnectivityStatus
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	pokeapi PokeAPIChecker
	version string
}

// NewHealthHandler creates a new HealthHandler. Either checker may be nil.
func NewHealthHandler(db DBPinger, checker PokeAPIChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		pokeapi: checker,
		version: version,
	}
}

type databaseStatus struct {
	Connected bool `json:"connected"`
}

type pokeAPIStatus struct {
	Connected bool   `json:"connected"`
	LatencyMs *int64 `json:"latencyMs"`
}

type healthData struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
	PokeAPI  pokeAPIStatus  `json:"pokeapi"`
}

// ServeHTTP reports "healthy" when both dependencies answer, "degraded" when
// only the species API is down, and "unhealthy" with a 503 when the database
// is unreachable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	data := healthData{Status: "healthy", Version: h.version}

	if h.db != nil && h.db.Ping(r.Context()) == nil {
		data.Database.Connected = true
	}

	if h.pokeapi != nil {
		conn := h.pokeapi.CheckConnectivity(r.Context())
		data.PokeAPI.Connected = conn.Connected
		if conn.Connected {
			ms := conn.Latency.Milliseconds()
			data.PokeAPI.LatencyMs = &ms
		}
	}

	status := http.StatusOK
	switch {
	case !data.Database.Connected:
		data.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	case !data.PokeAPI.Connected:
		data.Status = "degraded"
	}

	response.Success(w, status, data, requestID)
}
