package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"kudoswall/internal/service"
)

// AnalyticsHandler handles the owner dashboard endpoints
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Summary handles GET /v1/analytics
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.analyticsSvc.Summary(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// OverTime handles GET /v1/analytics/overtime
func (h *AnalyticsHandler) OverTime(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	series, err := h.analyticsSvc.RatingsOverTime(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ratingsOverTime": series})
}

// Engagement handles GET /v1/analytics/engagement
func (h *AnalyticsHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	series, err := h.analyticsSvc.EngagementOverTime(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"engagementOverTime": series})
}

// Compare handles GET /v1/forms/compare
func (h *AnalyticsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := h.analyticsSvc.Compare(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// FormMetrics handles GET /v1/forms/{formId}/metrics
func (h *AnalyticsHandler) FormMetrics(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	metrics, err := h.analyticsSvc.FormMetrics(r.Context(), owner, mux.Vars(r)["formId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
