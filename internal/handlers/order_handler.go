package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderStore is the interface that wraps the order collection operations the
// handler consumes.
type OrderStore interface {
	ListByEmail(ctx context.Context, email string) ([]map[string]any, error)
	Create(ctx context.Context, doc map[string]any) (*store.InsertResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
}

// OrderHandler handles order collection HTTP requests.
//
// Known gap: the order routes are public and the email query parameter is
// not checked against any caller identity, so anyone can list or delete any
// order. Kept as-is deliberately; tightening it would change the contract
// the frontend relies on.
type OrderHandler struct {
	BaseHandler
	orders OrderStore
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderStore, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler: BaseHandler{Logger: logger},
		orders:      orders,
	}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /orders?email=<addr> (public). Returns the order
// documents carrying the given email.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	orders, err := h.orders.ListByEmail(r.Context(), email)
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.RespondJSON(w, http.StatusOK, orders)
}

// Create handles POST /orders (public). Stores the posted document as-is.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.orders.Create(r.Context(), doc)
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /orders/{id} (public). Returns the raw delete
// result; a zero deleted count means no such order.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.orders.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}
