// Package middleware contains the HTTP middleware applied around the
// API handlers: authentication and request tracing.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bodasandeepsai/task-manager/internal/api/shared"
	"github.com/bodasandeepsai/task-manager/internal/service/auth"
)

// TokenCookieName is the cookie carrying the signed identity assertion.
const TokenCookieName = "token"

// AuthMiddleware provides token authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the token from the `token` cookie (or, for
// non-browser clients, a Bearer Authorization header) and adds the
// user's identity to the request context. Any missing or invalid
// credential yields 401 with body {"error": "Unauthorized"}; malformed,
// expired and tampered tokens are not distinguished to the caller.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			// Fail closed on anything the token service rejects.
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Unauthorized", err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, claims.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the authenticated identity from the request
// context. Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	identity, ok := r.Context().Value(shared.IdentityContextKey).(auth.Identity)
	return identity, ok
}

// extractToken pulls the credential from the cookie, falling back to the
// Authorization header.
func extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
