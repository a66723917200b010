package repositories

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MenuRepository manages documents in the menu collection.
type MenuRepository struct {
	menu   store.Collection
	logger *zap.Logger
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(s store.Store, logger *zap.Logger) *MenuRepository {
	return &MenuRepository{
		menu:   s.Collection(store.MenuCollection),
		logger: logger,
	}
}

// List returns all menu item documents.
func (r *MenuRepository) List(ctx context.Context) ([]map[string]any, error) {
	items := make([]map[string]any, 0)
	if err := r.menu.Find(ctx, nil, &items); err != nil {
		r.logger.Error("failed to list menu", zap.Error(err))
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

// Create stores a new menu item document.
func (r *MenuRepository) Create(ctx context.Context, doc map[string]any) (*store.InsertResult, error) {
	result, err := r.menu.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("failed to create menu item", zap.Error(err))
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return result, nil
}

// Delete removes the menu item with the given id. A zero deleted count means
// no such item and is a normal outcome.
func (r *MenuRepository) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.menu.DeleteOne(ctx, store.Filter{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete menu item", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete menu item: %w", err)
	}
	return result, nil
}
