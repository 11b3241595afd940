// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// ListActivities returns every activity keyed by name.
	ListActivities(ctx context.Context) (model.Catalog, error)

	// Signup and Unregister change one roster and return a confirmation message.
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /stats", wrap(s.statsHandler.HandleStats, "stats"))

	mux.Handle("GET /activities", wrap(s.activitiesHandler.HandleList, "activities"))
	mux.Handle("POST /activities/{activity}/signup", wrap(s.activitiesHandler.HandleSignup, "signup"))
	mux.Handle("DELETE /activities/{activity}/unregister", wrap(s.activitiesHandler.HandleUnregister, "unregister"))
}

// wrap applies the standard middleware chain to an API handler.
func wrap(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

// messageResponse is the success body of roster changes.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse carries either a string or a list of validation issues.
type errorResponse struct {
	Detail any `json:"detail"`
}

// validationIssue describes one failed request parameter.
type validationIssue struct {
	Type  string   `json:"type"`
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Input any      `json:"input"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeInternal logs err and answers 500 without leaking it.
func writeInternal(ctx context.Context, w http.ResponseWriter, err error) {
	logger.Get().Error(ctx, "request failed",
		logger.String("request_id", RequestIDFrom(ctx)),
		logger.Error(err),
	)
	writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
