package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	claims map[string]any
	err    error
}

func (s *stubVerifier) Verify(string) (map[string]any, error) {
	return s.claims, s.err
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			header:     "",
			verifier:   &stubVerifier{claims: map[string]any{"email": "a@x.com"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer scheme",
			header:     "Basic abc123",
			verifier:   &stubVerifier{claims: map[string]any{"email": "a@x.com"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer with empty token",
			header:     "Bearer ",
			verifier:   &stubVerifier{claims: map[string]any{"email": "a@x.com"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification failure",
			header:     "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("token is invalid")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid bearer token",
			header:     "Bearer good-token",
			verifier:   &stubVerifier{claims: map[string]any{"email": "a@x.com"}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "lowercase bearer prefix",
			header:     "bearer good-token",
			verifier:   &stubVerifier{claims: map[string]any{"email": "a@x.com"}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				claims, ok := Claims(r.Context())
				assert.True(t, ok)
				assert.Equal(t, tt.verifier.claims, claims)
			})

			handler := Authenticate(tt.verifier, zap.NewNop())(next)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled, "downstream handler invocation")
			if !tt.wantNext {
				// Gate failures send exactly one response and stop.
				assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestCallerEmail(t *testing.T) {
	t.Run("no claims in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := CallerEmail(req.Context())
		assert.False(t, ok)
	})

	t.Run("claims flow through the gate", func(t *testing.T) {
		verifier := &stubVerifier{claims: map[string]any{"email": "a@x.com"}}

		var gotEmail string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := CallerEmail(r.Context())
			require.True(t, ok)
			gotEmail = email
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		Authenticate(verifier, zap.NewNop())(next).ServeHTTP(rec, req)

		assert.Equal(t, "a@x.com", gotEmail)
	})
}
