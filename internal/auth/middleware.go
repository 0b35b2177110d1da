package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/BradenHooton/heavyprofile/internal/models"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// SessionContextKey is the key for storing session claims in context
	SessionContextKey contextKey = "admin_session"
)

// RequireSession rejects requests without a valid admin session.
// The token is read from the session cookie, or from a Bearer Authorization header.
func RequireSession(sm *SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := TokenFromRequest(r)
			if tokenString == "" {
				pkghttp.WriteMessageError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := sm.Validate(tokenString)
			if err != nil {
				pkghttp.WriteMessageError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest returns the session token from the cookie or a Bearer header, or "".
func TokenFromRequest(r *http.Request) string {
	if token, err := GetSessionCookie(r); err == nil && token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetSessionFromContext extracts session claims from request context
func GetSessionFromContext(r *http.Request) *models.SessionClaims {
	claims, ok := r.Context().Value(SessionContextKey).(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
