package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MenuStore is the interface that wraps the menu collection operations the
// handler consumes.
type MenuStore interface {
	List(ctx context.Context) ([]map[string]any, error)
	Create(ctx context.Context, doc map[string]any) (*store.InsertResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
}

// MenuHandler handles menu collection HTTP requests
type MenuHandler struct {
	BaseHandler
	menu MenuStore
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu MenuStore, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{
		BaseHandler: BaseHandler{Logger: logger},
		menu:        menu,
	}
}

// RegisterRoutes registers all menu routes with their gates.
func (h *MenuHandler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(authenticate, requireAdmin).Post("/", h.Create)
		r.With(authenticate, requireAdmin).Delete("/{id}", h.Delete)
	})
}

// List handles GET /menu (public). Returns all menu item documents.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.RespondJSON(w, http.StatusOK, items)
}

// Create handles POST /menu (admin only). Stores the posted document as-is.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.menu.Create(r.Context(), doc)
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /menu/{id} (admin only). Returns the raw delete
// result; a zero deleted count means no such item.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.menu.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}
