// Package handlers contains the HTTP resource handlers. Each resource
// handler performs one document store operation and forwards its result.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/repositories"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"message": message})
}

// respondStoreError maps repository errors to HTTP status codes.
func (h *BaseHandler) respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrInvalidID) {
		h.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.RespondError(w, http.StatusInternalServerError, "internal server error")
}
