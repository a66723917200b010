package repositories

import (
	"context"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/store"
	"go.uber.org/zap"
)

// ReviewRepository manages documents in the reviews collection.
type ReviewRepository struct {
	reviews store.Collection
	logger  *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(s store.Store, logger *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		reviews: s.Collection(store.ReviewsCollection),
		logger:  logger,
	}
}

// List returns all review documents.
func (r *ReviewRepository) List(ctx context.Context) ([]map[string]any, error) {
	reviews := make([]map[string]any, 0)
	if err := r.reviews.Find(ctx, nil, &reviews); err != nil {
		r.logger.Error("failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
