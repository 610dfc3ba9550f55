package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/logger"
	"kudoswall/internal/storage"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

// UploadService stores responder images after checking their content.
type UploadService struct {
	store    storage.ObjectStore
	maxBytes int64
	now      func() time.Time
}

// NewUploadService creates a new upload service. A nil store rejects every
// upload.
func NewUploadService(store storage.ObjectStore, maxBytes int64) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes, now: time.Now}
}

// UploadImage stores the image read from body and returns its public URL.
// size is the declared length; the type is decided by the first bytes.
func (s *UploadService) UploadImage(ctx context.Context, body io.Reader, size int64) (string, error) {
	if s.store == nil {
		return "", apperrors.Upstream(ErrStorageDisabled, "uploads are not available")
	}
	if size <= 0 {
		return "", apperrors.InvalidInput("empty file", "")
	}
	if size > s.maxBytes {
		return "", apperrors.InvalidInput("file too large", fmt.Sprintf("limit is %d bytes", s.maxBytes))
	}

	head := make([]byte, storage.SniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", apperrors.InvalidInput("unreadable file", err.Error())
	}
	head = head[:n]

	contentType, ext, err := storage.DetectImage(head)
	if err != nil {
		return "", apperrors.InvalidInput("unsupported file type", "jpeg, png, webp or gif expected")
	}

	key := fmt.Sprintf("responses/%s/%s%s", s.now().UTC().Format("2006/01/02"), uuid.NewString(), ext)
	url, err := s.store.Put(ctx, key, io.MultiReader(bytes.NewReader(head), body), size, contentType)
	if err != nil {
		logger.GetLogger().Errorw("Image upload failed", "key", key, "error", err)
		return "", apperrors.Upstream(err, "upload failed")
	}

	logger.GetLogger().Infow("Image uploaded", "key", key, "contentType", contentType, "size", size)
	return url, nil
}
