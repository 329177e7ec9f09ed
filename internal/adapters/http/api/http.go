// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/kaizolist/internal/app"
	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/registry"
	"github.com/okian/kaizolist/internal/domain/simulate"
	"github.com/okian/kaizolist/internal/domain/types"
	"github.com/okian/kaizolist/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	TopN(ctx context.Context, n int) ([]types.Standing, error)
	TopNByPoints(ctx context.Context, n int) ([]types.Standing, error)
	Player(ctx context.Context, name string) (service.PlayerView, error)
	Entries(ctx context.Context) ([]registry.RankedEntry, error)
	Simulate(ctx context.Context, player, entry string) (simulate.Result, error)
	Available(ctx context.Context, player string) ([]model.Entry, error)
	Reload(ctx context.Context) error
	GetStats() types.Stats
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps     Dependencies
	maxLimit int
	log      logger.Logger
}

// NewServer creates a new API server. maxLimit caps every ?limit parameter.
func NewServer(deps Dependencies, maxLimit int, log logger.Logger) *Server {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &Server{deps: deps, maxLimit: maxLimit, log: log}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(HandleHealth, "healthz"))
	route("GET /stats", "stats", s.handleStats)
	route("GET /leaderboard", "leaderboard", s.handleLeaderboard)
	route("GET /leaderboard/points", "leaderboard_points", s.handlePointsLeaderboard)
	route("GET /players/{name}", "players", s.handlePlayer)
	route("GET /players/{name}/available", "players_available", s.handleAvailable)
	route("GET /entries", "entries", s.handleEntries)
	route("GET /simulate", "simulate", s.handleSimulate)
	route("POST /reload", "reload", s.handleReload)
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

// writeServiceError maps service sentinels onto status codes.
func (s *Server) writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound), errors.Is(err, service.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, simulate.ErrAlreadyCleared):
		writeError(w, http.StatusConflict, "already_cleared", err)
	case errors.Is(err, service.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	default:
		if s.log != nil {
			s.log.Error(r.Context(), "request failed",
				logger.String("path", r.URL.Path),
				logger.String("requestID", RequestID(r.Context())),
				logger.Error(err),
			)
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
