package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReviewStore is the interface that wraps the review collection operations
// the handler consumes.
type ReviewStore interface {
	List(ctx context.Context) ([]map[string]any, error)
}

// ReviewHandler handles review collection HTTP requests
type ReviewHandler struct {
	BaseHandler
	reviews ReviewStore
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews ReviewStore, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler: BaseHandler{Logger: logger},
		reviews:     reviews,
	}
}

// RegisterRoutes registers the review routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reviews", h.List)
}

// List handles GET /reviews (public). Returns all review documents.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.RespondJSON(w, http.StatusOK, reviews)
}
