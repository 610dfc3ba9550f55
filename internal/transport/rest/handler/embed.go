package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/embed"
	"kudoswall/internal/metrics"
	"kudoswall/internal/service"
)

// EmbedHandler serves rendered testimonial cards
type EmbedHandler struct {
	responseSvc    *service.ResponseService
	frameAncestors string
	metrics        *metrics.Metrics
}

// NewEmbedHandler creates a new embed handler. frameAncestors is sent as the
// CSP frame-ancestors of embed documents.
func NewEmbedHandler(responseSvc *service.ResponseService, frameAncestors string, m *metrics.Metrics) *EmbedHandler {
	return &EmbedHandler{responseSvc: responseSvc, frameAncestors: frameAncestors, metrics: m}
}

// Document handles GET /v1/embed/{responseId}. Every outcome, failures
// included, is an HTML document.
func (h *EmbedHandler) Document(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	layout, err := embed.ParseLayout(query.Get("layout"))
	if err != nil {
		h.writeDocument(w, http.StatusBadRequest, embed.RenderErrorDocument(http.StatusBadRequest, "Unknown layout"))
		return
	}

	resp, err := h.responseSvc.GetEmbed(r.Context(), mux.Vars(r)["responseId"])
	if err != nil {
		status := apperrors.StatusOf(err)
		message := "Testimonial unavailable"
		if status == http.StatusNotFound {
			message = "Testimonial not found"
		}
		h.writeDocument(w, status, embed.RenderErrorDocument(status, message))
		return
	}

	doc, err := embed.RenderDocument(resp, embed.StyleFromQuery(query), layout)
	if err != nil {
		h.writeDocument(w, http.StatusInternalServerError, embed.RenderErrorDocument(http.StatusInternalServerError, "Testimonial unavailable"))
		return
	}
	h.metrics.EmbedRenders.WithLabelValues(layout.String(), "document").Inc()
	h.writeDocument(w, http.StatusOK, doc)
}

// Fragment handles GET /v1/embed/{responseId}/fragment
func (h *EmbedHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	layout, err := embed.ParseLayout(query.Get("layout"))
	if err != nil {
		writeError(w, r, apperrors.InvalidInput("invalid layout", err.Error()))
		return
	}

	resp, err := h.responseSvc.GetEmbed(r.Context(), mux.Vars(r)["responseId"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	fragment, err := embed.RenderFragment(resp, embed.StyleFromQuery(query), layout)
	if err != nil {
		writeError(w, r, apperrors.Internal(err))
		return
	}
	h.metrics.EmbedRenders.WithLabelValues(layout.String(), "fragment").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fragment))
}

func (h *EmbedHandler) writeDocument(w http.ResponseWriter, status int, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "frame-ancestors "+h.frameAncestors)
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", "public, max-age=300")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	w.Write([]byte(doc))
}
