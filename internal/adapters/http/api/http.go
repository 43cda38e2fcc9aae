// Package api declares the HTTP command surface: the chat-platform
// webhook relays user intents here, and monitoring reads health and
// stats. Department validation and the report whitelist are enforced
// in this layer, before anything reaches the core workflows.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bva/billabot/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the orchestrator.
type Dependencies interface {
	// DepartmentReport renders this week's table for one department.
	DepartmentReport(ctx context.Context, department string) (string, error)

	// UserReport renders the requesting user's own rows.
	UserReport(ctx context.Context, userID string) (string, error)

	// WeeklyReminders runs the reminder workflow for one department.
	WeeklyReminders(ctx context.Context, department string) ([]model.Delivery, error)
}

// Server wires HTTP routes for the command surface.
type Server struct {
	commandHandler     *CommandHandler
	remindHandler      *RemindHandler
	departmentsHandler *DepartmentsHandler
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
}

// NewServer creates an API server with all handlers. Departments and
// the whitelist come from configuration.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := newRouteConfig(opts...)
	return &Server{
		commandHandler:     NewCommandHandler(deps, cfg),
		remindHandler:      NewRemindHandler(deps, cfg),
		departmentsHandler: NewDepartmentsHandler(cfg),
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/command", MetricsMiddleware(s.commandHandler.HandleCommand, "command"))
	mux.HandleFunc("/remind", MetricsMiddleware(s.remindHandler.HandleRemind, "remind"))
	mux.HandleFunc("/departments", MetricsMiddleware(s.departmentsHandler.HandleDepartments, "departments"))
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
