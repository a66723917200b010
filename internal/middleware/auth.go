// Package middleware provides the request gates and ambient HTTP middleware.
// A gate that fails terminates the request with exactly one response and
// never invokes a further stage.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bistroboss/bistro-api/internal/token"
	"go.uber.org/zap"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenVerifier verifies a session token and returns its decoded claims.
type TokenVerifier interface {
	Verify(tokenString string) (map[string]any, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header. A missing
// header fails before any parsing is attempted; an invalid, tampered or
// expired token fails after. On success the decoded claims are attached to
// the request context for downstream gates and handlers.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Debug("token verification failed", zap.Error(err))
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims retrieves the decoded token claims from context.
func Claims(ctx context.Context) (map[string]any, bool) {
	claims, ok := ctx.Value(claimsKey).(map[string]any)
	return claims, ok
}

// CallerEmail retrieves the authenticated caller's email from context.
func CallerEmail(ctx context.Context) (string, bool) {
	claims, ok := Claims(ctx)
	if !ok {
		return "", false
	}
	return token.Email(claims)
}

// respondError writes a JSON error body. Middleware does not go through
// BaseHandler to avoid a handlers dependency cycle.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
