package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bva/billabot/internal/domain/model"
)

// remindRequest triggers an ad-hoc reminder run.
type remindRequest struct {
	UserID     string `json:"user_id"`
	Department string `json:"department"`
}

// deliveryView is the wire shape of one delivery outcome.
type deliveryView struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type remindResponse struct {
	Deliveries []deliveryView `json:"deliveries"`
}

// RemindHandler triggers reminder runs outside the weekly schedule.
type RemindHandler struct {
	deps Dependencies
	cfg  *routeConfig
}

// NewRemindHandler creates a remind handler.
func NewRemindHandler(deps Dependencies, cfg *routeConfig) *RemindHandler {
	return &RemindHandler{deps: deps, cfg: cfg}
}

// HandleRemind handles POST /remind requests.
func (h *RemindHandler) HandleRemind(w http.ResponseWriter, r *http.Request) {
	const op = "api.remind"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req remindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	if !h.cfg.allowed(req.UserID) {
		writeError(w, http.StatusForbidden, "not_allowed", fmt.Errorf("%s: %w", op, ErrUnauthorized))
		return
	}
	if !h.cfg.departments[req.Department] {
		writeError(w, http.StatusBadRequest, "unknown_department", fmt.Errorf("%s: %w: unknown department %q", op, ErrBadRequest, req.Department))
		return
	}

	deliveries, err := h.deps.WeeklyReminders(r.Context(), req.Department)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream", errors.Join(ErrUpstream, err))
		return
	}

	views := make([]deliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		v := deliveryView{Name: d.Name, Status: string(d.Status)}
		if d.Status == model.DeliveryFailed && d.Err != nil {
			v.Error = d.Err.Error()
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, remindResponse{Deliveries: views})
}
