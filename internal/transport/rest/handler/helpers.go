package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"kudoswall/internal/apperrors"
	"kudoswall/internal/logger"
	"kudoswall/internal/transport/rest/middleware"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes err as {"error","type"}. Errors that are not AppErrors
// are hidden behind a generic internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.GetLogger().Errorw("Request error",
			"requestId", middleware.GetRequestID(r.Context()),
			"type", appErr.Type,
			"message", appErr.Message,
			"error", appErr.Raw,
		)
	}
	writeJSON(w, appErr.HTTPStatus, map[string]string{"error": appErr.Message, "type": string(appErr.Type)})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperrors.InvalidInput("request body too large", "")
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("request body is required", "")
		default:
			return apperrors.InvalidInput("invalid request body", err.Error())
		}
	}
	return nil
}

func ownerID(r *http.Request) (string, error) {
	id := middleware.GetOwnerID(r.Context())
	if id == "" {
		return "", apperrors.Unauthorized("unauthorized")
	}
	return id, nil
}

func boolQuery(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
