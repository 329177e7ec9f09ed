package api

import (
	"net/http"
	"strings"
)

// handlePlayer handles GET /players/{name}.
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	view, err := s.deps.Player(r.Context(), name)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleAvailable handles GET /players/{name}/available.
func (s *Server) handleAvailable(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Available(r.Context(), strings.TrimSpace(r.PathValue("name")))
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleEntries handles GET /entries.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Entries(r.Context())
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
