// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/catalog/internal/domain/catalog"
	"github.com/okian/catalog/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EntriesDependencies
	ScoresDependencies

	// Ready reports whether the catalog has been loaded.
	Ready() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	entriesHandler *EntriesHandler
	scoresHandler  *ScoresHandler
	statusHandler  *StatusHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		entriesHandler: NewEntriesHandler(deps),
		scoresHandler:  NewScoresHandler(deps),
		statusHandler:  NewStatusHandler(),
	}
}

// Register attaches all HTTP routes to mux. The home view at / is registered
// by the site package.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/random-entries", MetricsMiddleware(s.entriesHandler.HandleRandomEntries, "random_entries"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandleScores, "scores"))
	mux.HandleFunc("/unauthorized", MetricsMiddleware(s.statusHandler.HandleUnauthorized, "unauthorized"))
	mux.HandleFunc("/not-found", MetricsMiddleware(s.statusHandler.HandleNotFound, "not_found"))

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/metrics", MetricsMiddleware(ReadOnly(promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).ServeHTTP, "metrics"))
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

// ReadOnly wraps h so that only GET and HEAD reach it.
func ReadOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if readOnly(w, r) {
			h.ServeHTTP(w, r)
		}
	})
}

// readOnly accepts GET and HEAD. Other methods get the same 404 as an
// unknown route.
func readOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return false
	}
	return true
}

// writeQueryError maps a failed catalog query to a response.
func writeQueryError(w http.ResponseWriter, ready bool, op string, err error) {
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "not_ready", WrapKind(op, ErrNotReady, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
}

// entriesOrEmpty keeps empty results encoded as [] rather than null.
func entriesOrEmpty(es []catalog.Entry) []catalog.Entry {
	if es == nil {
		return []catalog.Entry{}
	}
	return es
}
