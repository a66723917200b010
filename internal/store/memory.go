package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used as the test double for the document
// store, and for local development without a MongoDB deployment.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any

	// FailNext makes the next operation on any collection fail with
	// ErrUnavailable, simulating a transport failure.
	FailNext bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]map[string]any)}
}

// Ping never fails for an in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Collection returns the named collection, creating it on first use.
func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

// Count returns the number of documents matching filter, for test assertions.
func (s *MemoryStore) Count(name string, filter Filter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, doc := range s.collections[name] {
		if matches(doc, filter) {
			n++
		}
	}
	return n
}

type memoryCollection struct {
	store *MemoryStore
	name  string
}

func (c *memoryCollection) failNext() bool {
	if c.store.FailNext {
		c.store.FailNext = false
		return true
	}
	return false
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	if c.failNext() {
		return fmt.Errorf("%w: connection refused", ErrUnavailable)
	}
	for _, doc := range c.store.collections[c.name] {
		if matches(doc, filter) {
			return decode(doc, out)
		}
	}
	return ErrNoDocuments
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter, out any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	if c.failNext() {
		return fmt.Errorf("%w: connection refused", ErrUnavailable)
	}
	matched := make([]map[string]any, 0)
	for _, doc := range c.store.collections[c.name] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	return decode(matched, out)
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc any) (*InsertResult, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.failNext() {
		return nil, fmt.Errorf("%w: connection refused", ErrUnavailable)
	}

	stored := make(map[string]any)
	if err := decode(doc, &stored); err != nil {
		return nil, err
	}
	if _, ok := stored["_id"]; !ok {
		stored["_id"] = primitive.NewObjectID()
	}

	c.store.collections[c.name] = append(c.store.collections[c.name], stored)
	return &InsertResult{InsertedID: stored["_id"]}, nil
}

func (c *memoryCollection) UpdateOne(ctx context.Context, filter Filter, fields map[string]any) (*UpdateResult, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.failNext() {
		return nil, fmt.Errorf("%w: connection refused", ErrUnavailable)
	}
	for _, doc := range c.store.collections[c.name] {
		if !matches(doc, filter) {
			continue
		}
		modified := int64(0)
		for k, v := range fields {
			if !reflect.DeepEqual(doc[k], v) {
				doc[k] = v
				modified = 1
			}
		}
		return &UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
	}
	return &UpdateResult{}, nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, filter Filter) (*DeleteResult, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.failNext() {
		return nil, fmt.Errorf("%w: connection refused", ErrUnavailable)
	}
	docs := c.store.collections[c.name]
	for i, doc := range docs {
		if matches(doc, filter) {
			c.store.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
			return &DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &DeleteResult{}, nil
}

// matches reports whether every filter field equals the stored field.
func matches(doc map[string]any, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, want) && fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// decode copies a value into out through a JSON round trip, mirroring the
// driver decoding documents into caller-provided types.
func decode(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
