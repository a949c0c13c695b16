// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/notafinal/notafinal/internal/domain/policy"
)

// PolicyDependencies defines the interface for policy reads and updates.
type PolicyDependencies interface {
	Policy(ctx context.Context) policy.Policy
	UpdatePolicy(ctx context.Context, startTime, cutoffTime string, maxPercent float64) (policy.Policy, error)
}

// PolicyHandler handles policy requests.
type PolicyHandler struct {
	deps PolicyDependencies
}

// NewPolicyHandler creates a new policy handler.
func NewPolicyHandler(deps PolicyDependencies) *PolicyHandler {
	return &PolicyHandler{deps: deps}
}

// policyRequest carries the three editable fields of an update.
type policyRequest struct {
	StartTime  string   `json:"start_time"`
	CutoffTime string   `json:"cutoff_time"`
	MaxPercent *float64 `json:"max_percent"`
}

func (p policyRequest) validate() error {
	switch {
	case strings.TrimSpace(p.StartTime) == "":
		return errors.New("missing start_time")
	case strings.TrimSpace(p.CutoffTime) == "":
		return errors.New("missing cutoff_time")
	case p.MaxPercent == nil:
		return errors.New("missing max_percent")
	}
	return nil
}

// policyResponse mirrors the policy snapshot, window included.
type policyResponse struct {
	StartTime     string  `json:"start_time"`
	CutoffTime    string  `json:"cutoff_time"`
	MaxPercent    float64 `json:"max_percent"`
	WindowMinutes int     `json:"window_minutes"`
}

func toPolicyResponse(pol policy.Policy) policyResponse {
	return policyResponse{
		StartTime:     pol.Start.String(),
		CutoffTime:    pol.Cutoff.String(),
		MaxPercent:    pol.MaxPercent,
		WindowMinutes: pol.WindowMinutes,
	}
}

// HandleGetPolicy handles GET /api/policy requests.
func (h *PolicyHandler) HandleGetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPolicyResponse(h.deps.Policy(r.Context())))
}

// HandleUpdatePolicy handles PUT/POST /api/policy requests. Validation
// failures leave the active policy untouched and surface the reason.
func (h *PolicyHandler) HandleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	pol, err := h.deps.UpdatePolicy(r.Context(), req.StartTime, req.CutoffTime, *req.MaxPercent)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_policy", err)
		return
	}
	writeJSON(w, http.StatusOK, toPolicyResponse(pol))
}
