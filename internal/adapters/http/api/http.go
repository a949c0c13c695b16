// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notafinal/notafinal/internal/domain/model"
	"github.com/notafinal/notafinal/internal/domain/policy"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ProcessBatch scores decoded rows against the current policy snapshot.
	ProcessBatch(ctx context.Context, header []string, rows []model.RawRow) (model.BatchResult, model.ScoreSummary)

	// Policy reads the current policy snapshot.
	Policy(ctx context.Context) policy.Policy

	// UpdatePolicy validates, applies and persists a new policy.
	UpdatePolicy(ctx context.Context, startTime, cutoffTime string, maxPercent float64) (policy.Policy, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	uploadHandler *UploadHandler
	policyHandler *PolicyHandler
}

// NewServer creates a new API server with all handlers. maxUploadBytes caps
// the size of uploaded CSV files.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxUploadBytes int64) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		uploadHandler: NewUploadHandler(deps, maxUploadBytes),
		policyHandler: NewPolicyHandler(deps),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Post("/api/upload", MetricsMiddleware(s.uploadHandler.HandleUpload, "upload"))
	r.Get("/api/policy", MetricsMiddleware(s.policyHandler.HandleGetPolicy, "policy"))
	r.Put("/api/policy", MetricsMiddleware(s.policyHandler.HandleUpdatePolicy, "policy"))
	r.Post("/api/policy", MetricsMiddleware(s.policyHandler.HandleUpdatePolicy, "policy"))
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
