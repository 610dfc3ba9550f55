package handler

import (
	"net/http"

	"kudoswall/internal/service"
)

// HealthHandler reports dependency status
type HealthHandler struct {
	healthSvc *service.HealthService
}

func NewHealthHandler(healthSvc *service.HealthService) *HealthHandler {
	return &HealthHandler{healthSvc: healthSvc}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	report := h.healthSvc.Check(r.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}
