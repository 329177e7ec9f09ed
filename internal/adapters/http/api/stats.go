package api

import (
	"net/http"
)

// handleStats handles GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetStats())
}

// handleReload handles POST /reload and returns the fresh stats.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Reload(r.Context()); err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.GetStats())
}
