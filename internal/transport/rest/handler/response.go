package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/embed"
	"kudoswall/internal/model"
	"kudoswall/internal/service"
)

// ResponseHandler handles submissions, moderation and the embed payload
type ResponseHandler struct {
	responseSvc *service.ResponseService
	scriptURL   string
}

// NewResponseHandler creates a new response handler. scriptURL is the embed
// loader referenced by generated snippets; when empty, snippets are refused.
func NewResponseHandler(responseSvc *service.ResponseService, scriptURL string) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc, scriptURL: scriptURL}
}

// Submit handles POST /v1/forms/{formId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["formId"], &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": resp.ID})
}

// Embed handles GET /v1/responses/{id}
func (h *ResponseHandler) Embed(w http.ResponseWriter, r *http.Request) {
	resp, err := h.responseSvc.GetEmbed(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Embed())
}

// List handles GET /v1/forms/{formId}/responses?includeSpam=
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	responses, err := h.responseSvc.ListForForm(r.Context(), owner, mux.Vars(r)["formId"], boolQuery(r, "includeSpam"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// SetSpam handles PATCH /v1/responses/{id}/spam
func (h *ResponseHandler) SetSpam(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.SpamUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.responseSvc.SetSpam(r.Context(), owner, mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Snippet handles GET /v1/responses/{id}/snippet?layout=&<style params>
func (h *ResponseHandler) Snippet(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.scriptURL == "" {
		writeError(w, r, apperrors.New(apperrors.InternalError, "snippets are not configured", "EMBED_SCRIPT_URL is empty"))
		return
	}

	query := r.URL.Query()
	layout, err := embed.ParseLayout(query.Get("layout"))
	if err != nil {
		writeError(w, r, apperrors.InvalidInput("invalid layout", err.Error()))
		return
	}

	resp, err := h.responseSvc.GetOwned(r.Context(), owner, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	snippet, err := embed.BuildSnippet(resp.ID, layout, embed.StyleFromQuery(query), h.scriptURL)
	if err != nil {
		writeError(w, r, apperrors.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"snippet": snippet})
}
