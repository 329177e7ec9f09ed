package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/kaizolist/internal/domain/types"
)

const defaultLimit = 10

// parseLimit reads ?limit, defaulting when absent.
func (s *Server) parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return min(defaultLimit, s.maxLimit), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	if n > s.maxLimit {
		return 0, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, s.maxLimit)
	}
	return n, nil
}

func (s *Server) serveTop(w http.ResponseWriter, r *http.Request, top func(context.Context, int) ([]types.Standing, error)) {
	n, err := s.parseLimit(r)
	if err != nil {
		code := "bad_request"
		if errors.Is(err, ErrLimitExceeded) {
			code = "limit_exceeded"
		}
		writeError(w, http.StatusBadRequest, code, err)
		return
	}
	standings, err := top(r.Context(), n)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// handleLeaderboard handles GET /leaderboard?limit=N.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveTop(w, r, s.deps.TopN)
}

// handlePointsLeaderboard handles GET /leaderboard/points?limit=N.
func (s *Server) handlePointsLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveTop(w, r, s.deps.TopNByPoints)
}
