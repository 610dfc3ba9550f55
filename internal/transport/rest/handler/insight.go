package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"kudoswall/internal/model"
	"kudoswall/internal/service"
)

// InsightHandler handles AI insight endpoints
type InsightHandler struct {
	insightSvc *service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightSvc *service.InsightService) *InsightHandler {
	return &InsightHandler{insightSvc: insightSvc}
}

// Generate handles POST /v1/forms/{formId}/insights
func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.InsightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.insightSvc.Generate(r.Context(), owner, mux.Vars(r)["formId"], req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
