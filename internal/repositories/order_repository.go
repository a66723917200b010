package repositories

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderRepository manages documents in the orders collection.
type OrderRepository struct {
	orders store.Collection
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(s store.Store, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		orders: s.Collection(store.OrdersCollection),
		logger: logger,
	}
}

// ListByEmail returns all order documents carrying the given email.
func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]map[string]any, error) {
	orders := make([]map[string]any, 0)
	if err := r.orders.Find(ctx, store.Filter{"email": email}, &orders); err != nil {
		r.logger.Error("failed to list orders", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Create stores a new order document. Ownership by email is advisory; it is
// not checked against the caller at write time.
func (r *OrderRepository) Create(ctx context.Context, doc map[string]any) (*store.InsertResult, error) {
	result, err := r.orders.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("failed to create order", zap.Error(err))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return result, nil
}

// Delete removes the order with the given id. A zero deleted count means no
// such order and is a normal outcome.
func (r *OrderRepository) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.orders.DeleteOne(ctx, store.Filter{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete order", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	return result, nil
}
