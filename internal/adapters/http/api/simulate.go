package api

import (
	"fmt"
	"net/http"
	"strings"
)

// handleSimulate handles GET /simulate?player=P&entry=E. An empty player
// previews the entry's value for someone with no clears.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entry := strings.TrimSpace(q.Get("entry"))
	if entry == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing entry", ErrBadRequest))
		return
	}
	res, err := s.deps.Simulate(r.Context(), strings.TrimSpace(q.Get("player")), entry)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
