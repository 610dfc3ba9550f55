package handler

import (
	"errors"
	"net/http"

	"kudoswall/internal/apperrors"
	"kudoswall/internal/service"
)

// multipart overhead allowed on top of the file limit
const multipartSlack = 64 << 10

// UploadHandler handles image uploads
type UploadHandler struct {
	uploadSvc *service.UploadService
	maxBytes  int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadSvc *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, maxBytes: maxBytes}
}

// Image handles POST /v1/uploads/images (multipart field "file")
func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartSlack)
	if err := r.ParseMultipartForm(h.maxBytes + multipartSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, apperrors.InvalidInput("file too large", ""))
			return
		}
		writeError(w, r, apperrors.InvalidInput("invalid multipart body", err.Error()))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperrors.InvalidInput("file is required", err.Error()))
		return
	}
	defer file.Close()

	url, err := h.uploadSvc.UploadImage(r.Context(), file, header.Size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
