package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kudoswall/internal/apperrors"
	"kudoswall/internal/service"
)

type contextKey string

const (
	OwnerIDKey   contextKey = "ownerId"
	RequestIDKey contextKey = "requestId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireOwner validates the owner JWT from the Authorization header
func (m *AuthMiddleware) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, apperrors.Unauthorized("missing authorization header"))
			return
		}

		claims, err := m.authSvc.ValidateOwnerToken(token)
		if err != nil {
			writeError(w, apperrors.Unauthorized("invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), OwnerIDKey, claims.Owner())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireMatchingUserRef rejects requests whose userRef query parameter names
// someone other than the authenticated owner. A missing userRef is allowed.
func RequireMatchingUserRef(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := r.URL.Query().Get("userRef")
		if ref != "" && ref != GetOwnerID(r.Context()) {
			writeError(w, apperrors.Forbidden("userRef does not match the authenticated owner", ""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetOwnerID extracts the owner ID from context
func GetOwnerID(ctx context.Context) string {
	if v, ok := ctx.Value(OwnerIDKey).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]string{"error": appErr.Message, "type": string(appErr.Type)})
}
