package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bva/billabot/internal/adapters/directory"
	"github.com/bva/billabot/internal/adapters/timetracking"
	"github.com/bva/billabot/internal/app"
	"github.com/bva/billabot/internal/domain/report"
)

const helpText = "I can do these:\n" +
	"  hi - say hello\n" +
	"  hours - your own tracked hours this week\n" +
	"  report <department> - the department's weekly report\n" +
	"  help - this message"

const fallbackText = "Couldn't reach the time tracking service right now, try again in a bit."

// commandRequest is the intent relayed by the chat webhook.
type commandRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (c commandRequest) validate() error {
	switch {
	case strings.TrimSpace(c.UserID) == "":
		return errors.New("missing user_id")
	case strings.TrimSpace(c.Text) == "":
		return errors.New("missing text")
	}
	return nil
}

type commandResponse struct {
	Text string `json:"text"`
}

// CommandHandler maps chat intents onto the core workflows.
type CommandHandler struct {
	deps Dependencies
	cfg  *routeConfig
}

// NewCommandHandler creates a command handler.
func NewCommandHandler(deps Dependencies, cfg *routeConfig) *CommandHandler {
	return &CommandHandler{deps: deps, cfg: cfg}
}

// HandleCommand handles POST /command requests.
func (h *CommandHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	const op = "api.command"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	fields := strings.Fields(req.Text)
	intent := strings.ToLower(fields[0])
	switch intent {
	case "hi":
		writeJSON(w, http.StatusOK, commandResponse{Text: "heysup."})
	case "help":
		writeJSON(w, http.StatusOK, commandResponse{Text: helpText})
	case "hours":
		h.handleHours(w, r, req.UserID)
	case "report":
		h.handleReport(w, r, req.UserID, strings.Join(fields[1:], " "))
	default:
		writeJSON(w, http.StatusOK, commandResponse{Text: helpText})
	}
}

func (h *CommandHandler) handleHours(w http.ResponseWriter, r *http.Request, userID string) {
	text, err := h.deps.UserReport(r.Context(), userID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, commandResponse{Text: fenced(text)})
	case errors.Is(err, report.ErrNoTotals):
		writeJSON(w, http.StatusOK, commandResponse{Text: "No hours tracked yet this week."})
	case errors.Is(err, app.ErrUnknownUser):
		writeJSON(w, http.StatusOK, commandResponse{Text: "Couldn't find you in the directory."})
	default:
		h.writeUpstreamError(w, err)
	}
}

func (h *CommandHandler) handleReport(w http.ResponseWriter, r *http.Request, userID, department string) {
	const op = "api.report"
	if !h.cfg.allowed(userID) {
		writeError(w, http.StatusForbidden, "not_allowed", fmt.Errorf("%s: %w", op, ErrUnauthorized))
		return
	}
	if !h.cfg.departments[department] {
		writeError(w, http.StatusBadRequest, "unknown_department", fmt.Errorf("%s: %w: unknown department %q", op, ErrBadRequest, department))
		return
	}

	text, err := h.deps.DepartmentReport(r.Context(), department)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, commandResponse{Text: fenced(text)})
	case errors.Is(err, report.ErrNoTotals):
		writeJSON(w, http.StatusOK, commandResponse{Text: "No hours tracked yet this week."})
	default:
		h.writeUpstreamError(w, err)
	}
}

// writeUpstreamError surfaces fetch failures as a fallback message
// rather than crashing the exchange.
func (h *CommandHandler) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, timetracking.ErrNetwork) ||
		errors.Is(err, timetracking.ErrParse) ||
		errors.Is(err, directory.ErrNetwork) {
		writeJSON(w, http.StatusBadGateway, commandResponse{Text: fallbackText})
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", ErrUpstream)
}

// fenced wraps a report in a code fence so the chat client renders it
// in a fixed-width font; the table's alignment depends on it.
func fenced(text string) string {
	return "```" + text + "```"
}
