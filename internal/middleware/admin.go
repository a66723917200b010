package middleware

import (
	"context"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoleLookup resolves the stored role for an email.
type RoleLookup interface {
	LookupRole(ctx context.Context, email string) (models.Role, error)
}

// RequireAdmin admits only callers whose stored role is admin. The caller
// identity comes from the authenticated claims in context, falling back to
// the route's email parameter when no claims are present. The stored role is
// looked up on every request; the token itself carries no authorization
// state.
func RequireAdmin(roles RoleLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := CallerEmail(r.Context())
			if !ok {
				email = chi.URLParam(r, "email")
			}
			if email == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			role, err := roles.LookupRole(r.Context(), email)
			if err != nil {
				logger.Error("failed to look up caller role", zap.Error(err), zap.String("email", email))
				respondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !role.IsAdmin() {
				respondError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
