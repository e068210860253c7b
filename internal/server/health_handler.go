package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// livenessHandler checks if the server is running and accepting requests.
// Always returns 200 OK - no external dependencies required.
func (s *Server) livenessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.logger.DebugContext(ctx, "liveness check requested")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "deckpeek",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// readinessHandler checks if the server is ready to handle requests.
// Returns 200 OK if the scratch directory is accessible, 503 if not.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.logger.DebugContext(ctx, "readiness check requested")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "deckpeek",
		Checks:    make(map[string]string),
	}

	w.Header().Set("Content-Type", "application/json")
	if s.scratch.IsAccessible() {
		response.Checks["scratch"] = "accessible"
		w.WriteHeader(http.StatusOK)
	} else {
		response.Status = "unhealthy"
		response.Checks["scratch"] = "inaccessible"
		w.WriteHeader(http.StatusServiceUnavailable)
		s.logger.ErrorContext(ctx, "readiness check failed",
			"scratch", "inaccessible",
		)
	}
	json.NewEncoder(w).Encode(response)
}
