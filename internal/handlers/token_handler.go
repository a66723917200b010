package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TokenIssuer signs identity claims into a session token.
type TokenIssuer interface {
	Issue(claims map[string]any) (string, error)
}

// TokenHandler handles session token issuance
type TokenHandler struct {
	BaseHandler
	issuer TokenIssuer
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(issuer TokenIssuer, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		BaseHandler: BaseHandler{Logger: logger},
		issuer:      issuer,
	}
}

// RegisterRoutes registers the token issuance route
func (h *TokenHandler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.Issue)
}

// Issue handles POST /jwt. The body is an identity claims object that must
// include an email; any extra fields are signed into the token as-is. The
// response body is the signed token string.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if email, ok := claims["email"].(string); !ok || email == "" {
		h.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	signed, err := h.issuer.Issue(claims)
	if err != nil {
		h.Logger.Error("failed to issue token", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(signed))
}
