package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/middleware"
	"github.com/bistroboss/bistro-api/internal/models"
	"github.com/bistroboss/bistro-api/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserStore is the interface that wraps the user collection operations the
// handler consumes.
type UserStore interface {
	List(ctx context.Context) ([]map[string]any, error)
	Register(ctx context.Context, doc map[string]any) (*store.InsertResult, bool, error)
	LookupRole(ctx context.Context, email string) (models.Role, error)
	PromoteToAdmin(ctx context.Context, id string) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
}

// UserHandler handles user collection HTTP requests
type UserHandler struct {
	BaseHandler
	users UserStore
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		users:       users,
	}
}

// RegisterRoutes registers all user routes with their gates.
func (h *UserHandler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.With(authenticate, requireAdmin).Get("/", h.List)
		r.Post("/", h.Register)
		r.With(authenticate).Get("/admin/{email}", h.AdminStatus)
		r.With(authenticate, requireAdmin).Patch("/admin/{id}", h.Promote)
		r.With(authenticate, requireAdmin).Delete("/{id}", h.Delete)
	})
}

// List handles GET /users (admin only). Returns all user documents.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.RespondJSON(w, http.StatusOK, users)
}

// AdminStatus handles GET /users/admin/{email} (authenticated). The path
// email must equal the authenticated caller's email; this is an identity
// check only and grants nothing beyond reading one's own admin flag.
func (h *UserHandler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	caller, ok := middleware.CallerEmail(r.Context())
	if !ok || caller != email {
		h.RespondError(w, http.StatusForbidden, "forbidden")
		return
	}

	role, err := h.users.LookupRole(r.Context(), email)
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"admin": role.IsAdmin()})
}

// Register handles POST /users (public). Registration is idempotent on
// email: a repeat registration reports a synthetic insert result instead of
// surfacing a duplicate-key failure.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if email, ok := doc["email"].(string); !ok || email == "" {
		h.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	result, _, err := h.users.Register(r.Context(), doc)
	if err != nil {
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// Promote handles PATCH /users/admin/{id} (admin only). Sets the admin role
// on the user with the given id and returns the raw update result; a zero
// matched count means no such user.
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.PromoteToAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /users/{id} (admin only). Returns the raw delete
// result; a zero deleted count means no such user.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, result)
}
