package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"kudoswall/internal/model"
	"kudoswall/internal/service"
)

// FormHandler handles form endpoints
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.CreateFormRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	form, err := h.formSvc.Create(r.Context(), owner, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, form)
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	forms, err := h.formSvc.ListOwned(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Get handles GET /v1/forms/{formId}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	form, err := h.formSvc.GetOwned(r.Context(), owner, mux.Vars(r)["formId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// UpdateQuestions handles PUT /v1/forms/{formId}/questions
func (h *FormHandler) UpdateQuestions(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.UpdateQuestionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	form, err := h.formSvc.UpdateQuestions(r.Context(), owner, mux.Vars(r)["formId"], &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Public handles GET /v1/forms/{formId}/public
func (h *FormHandler) Public(w http.ResponseWriter, r *http.Request) {
	form, err := h.formSvc.GetPublic(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// AddSuggestion handles POST /v1/forms/{formId}/suggestions
func (h *FormHandler) AddSuggestion(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.formSvc.AddSuggestion(r.Context(), mux.Vars(r)["formId"], &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}
