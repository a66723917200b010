package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bistroboss/bistro-api/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubRoleLookup struct {
	roles map[string]models.Role
	err   error
}

func (s *stubRoleLookup) LookupRole(_ context.Context, email string) (models.Role, error) {
	if s.err != nil {
		return models.RoleStandard, s.err
	}
	return s.roles[email], nil
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		claims     map[string]any
		lookup     *stubRoleLookup
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "admin caller passes",
			claims:     map[string]any{"email": "admin@x.com"},
			lookup:     &stubRoleLookup{roles: map[string]models.Role{"admin@x.com": models.RoleAdmin}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "standard caller is forbidden",
			claims:     map[string]any{"email": "user@x.com"},
			lookup:     &stubRoleLookup{roles: map[string]models.Role{"admin@x.com": models.RoleAdmin}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown caller is forbidden",
			claims:     map[string]any{"email": "ghost@x.com"},
			lookup:     &stubRoleLookup{},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "claims without email",
			claims:     map[string]any{"name": "nameless"},
			lookup:     &stubRoleLookup{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "store failure",
			claims:     map[string]any{"email": "admin@x.com"},
			lookup:     &stubRoleLookup{err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			handler := RequireAdmin(tt.lookup, zap.NewNop())(next)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), claimsKey, tt.claims))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled, "downstream handler invocation")
		})
	}
}

func TestRequireAdmin_EmailParamFallback(t *testing.T) {
	// Without authenticated claims the gate falls back to the route's email
	// parameter for the role lookup.
	lookup := &stubRoleLookup{roles: map[string]models.Role{"admin@x.com": models.RoleAdmin}}

	r := chi.NewRouter()
	r.With(RequireAdmin(lookup, zap.NewNop())).Get("/roles/{email}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin email param", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles/admin@x.com", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("standard email param", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles/user@x.com", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no claims and no param", func(t *testing.T) {
		rr := chi.NewRouter()
		rr.With(RequireAdmin(lookup, zap.NewNop())).Get("/flat", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		rr.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flat", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
