// Package repositories wraps the document store collections used by the API.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/models"
	"github.com/bistroboss/bistro-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrInvalidID is returned when a path identifier is not a valid document id.
var ErrInvalidID = errors.New("invalid document id")

// UserRepository manages documents in the users collection. It also serves as
// the identity store for authorization decisions: a user's stored role is the
// single source of truth for admin access.
type UserRepository struct {
	users  store.Collection
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(s store.Store, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		users:  s.Collection(store.UsersCollection),
		logger: logger,
	}
}

// List returns all user documents.
func (r *UserRepository) List(ctx context.Context) ([]map[string]any, error) {
	users := make([]map[string]any, 0)
	if err := r.users.Find(ctx, nil, &users); err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Register stores a user document on first registration. Registration is
// idempotent on email: when a user with the same email already exists the
// store is left untouched and a synthetic insert result is returned, with
// existed reporting which case occurred.
func (r *UserRepository) Register(ctx context.Context, doc map[string]any) (result *store.InsertResult, existed bool, err error) {
	var existing models.User
	err = r.users.FindOne(ctx, store.Filter{"email": doc["email"]}, &existing)
	if err == nil {
		return &store.InsertResult{InsertedID: true}, true, nil
	}
	if !errors.Is(err, store.ErrNoDocuments) {
		r.logger.Error("failed to check user existence", zap.Error(err))
		return nil, false, fmt.Errorf("failed to check user existence: %w", err)
	}

	result, err = r.users.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("failed to register user", zap.Error(err))
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}
	return result, false, nil
}

// LookupRole returns the stored role for an email. An unknown email or a user
// without a role field is a standard user, not an error; only a store
// transport failure is reported as one.
func (r *UserRepository) LookupRole(ctx context.Context, email string) (models.Role, error) {
	var user models.User
	err := r.users.FindOne(ctx, store.Filter{"email": email}, &user)
	if errors.Is(err, store.ErrNoDocuments) {
		return models.RoleStandard, nil
	}
	if err != nil {
		r.logger.Error("failed to look up role", zap.Error(err), zap.String("email", email))
		return models.RoleStandard, fmt.Errorf("failed to look up role: %w", err)
	}
	return user.Role, nil
}

// PromoteToAdmin sets the admin role on the user with the given id. A zero
// matched count means no such user and is a normal outcome.
func (r *UserRepository) PromoteToAdmin(ctx context.Context, id string) (*store.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.users.UpdateOne(ctx, store.Filter{"_id": oid}, map[string]any{"role": string(models.RoleAdmin)})
	if err != nil {
		r.logger.Error("failed to promote user", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	return result, nil
}

// Delete removes the user with the given id. A zero deleted count means no
// such user and is a normal outcome.
func (r *UserRepository) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.users.DeleteOne(ctx, store.Filter{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return result, nil
}
