package api

import (
	"net/http"
)

type departmentsResponse struct {
	Departments []string `json:"departments"`
}

// DepartmentsHandler lists the recognized department filter values so
// a chat front end can render its picker.
type DepartmentsHandler struct {
	cfg *routeConfig
}

// NewDepartmentsHandler creates a departments handler.
func NewDepartmentsHandler(cfg *routeConfig) *DepartmentsHandler {
	return &DepartmentsHandler{cfg: cfg}
}

// HandleDepartments handles GET /departments requests.
func (h *DepartmentsHandler) HandleDepartments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, departmentsResponse{Departments: h.cfg.ordered})
}
