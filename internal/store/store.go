// Package store defines the document store the API is built against and
// provides its MongoDB implementation.
package store

import (
	"context"
	"errors"
)

// Collection names used by the application.
const (
	UsersCollection   = "users"
	MenuCollection    = "menu"
	ReviewsCollection = "reviews"
	OrdersCollection  = "orders"
)

// ErrNoDocuments is returned by FindOne when no document matches the filter.
var ErrNoDocuments = errors.New("no documents in result")

// ErrUnavailable is returned when the store cannot be reached. Absence of a
// matching document is never reported as ErrUnavailable.
var ErrUnavailable = errors.New("document store unavailable")

// Filter selects documents by exact field equality. A nil filter matches all
// documents in the collection.
type Filter map[string]any

// InsertResult reports the outcome of an insert.
type InsertResult struct {
	InsertedID any `json:"insertedId"`
}

// UpdateResult reports the outcome of an update. A zero MatchedCount is a
// normal successful outcome, not an error.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports the outcome of a delete. A zero DeletedCount is a
// normal successful outcome, not an error.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is a single named collection of documents.
type Collection interface {
	// FindOne decodes the first document matching filter into out.
	// Returns ErrNoDocuments when nothing matches.
	FindOne(ctx context.Context, filter Filter, out any) error
	// Find decodes all documents matching filter into out, which must be a
	// pointer to a slice.
	Find(ctx context.Context, filter Filter, out any) error
	// InsertOne stores a new document and returns its generated identifier.
	InsertOne(ctx context.Context, doc any) (*InsertResult, error)
	// UpdateOne sets the given fields on the first document matching filter.
	UpdateOne(ctx context.Context, filter Filter, fields map[string]any) (*UpdateResult, error)
	// DeleteOne removes the first document matching filter.
	DeleteOne(ctx context.Context, filter Filter) (*DeleteResult, error)
}

// Store is a handle to the document store.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
}
