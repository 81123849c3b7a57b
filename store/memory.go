package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection keeps documents in insertion order behind a RWMutex.
// It follows MongoDB semantics closely enough for the handlers: equality
// filters, a missing field matches a nil filter value, `_id` is always unique.
type MemoryCollection struct {
	mu     sync.RWMutex
	name   string
	docs   []bson.M
	unique [][]string
}

// NewMemoryCollection constructs an empty MemoryCollection.
func NewMemoryCollection(name string) *MemoryCollection {
	return &MemoryCollection{name: name}
}

func (c *MemoryCollection) Name() string {
	return c.name
}

func (c *MemoryCollection) InsertOne(ctx context.Context, doc bson.M) (*InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := cloneDoc(doc)
	if _, ok := stored["_id"]; !ok {
		stored["_id"] = primitive.NewObjectID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkUnique(stored, -1); err != nil {
		return nil, fmt.Errorf("insert %s: %w", c.name, err)
	}
	c.docs = append(c.docs, stored)
	return &InsertResult{Acknowledged: true, InsertedID: stored["_id"]}, nil
}

func (c *MemoryCollection) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(filter); i >= 0 {
		return cloneDoc(c.docs[i]), nil
	}
	return nil, nil
}

func (c *MemoryCollection) Find(ctx context.Context, filter bson.M) ([]bson.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]bson.M, 0, len(c.docs))
	for _, d := range c.docs {
		if matches(d, filter) {
			result = append(result, cloneDoc(d))
		}
	}
	return result, nil
}

func (c *MemoryCollection) UpdateOne(ctx context.Context, filter bson.M, set bson.M, upsert bool) (*UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(filter); i >= 0 {
		updated := cloneDoc(c.docs[i])
		changed := false
		for k, v := range set {
			if k == "_id" {
				continue
			}
			if old, ok := updated[k]; !ok || !valuesEqual(old, v) {
				changed = true
			}
			updated[k] = cloneValue(v)
		}
		res := &UpdateResult{Acknowledged: true, MatchedCount: 1}
		if !changed {
			return res, nil
		}
		if err := c.checkUnique(updated, i); err != nil {
			return nil, fmt.Errorf("update %s: %w", c.name, err)
		}
		c.docs[i] = updated
		res.ModifiedCount = 1
		return res, nil
	}

	if !upsert {
		return &UpdateResult{Acknowledged: true}, nil
	}

	// The new document takes its equality fields from the filter, then the $set.
	created := cloneDoc(filter)
	for k, v := range set {
		created[k] = cloneValue(v)
	}
	if _, ok := created["_id"]; !ok {
		created["_id"] = primitive.NewObjectID()
	}
	if err := c.checkUnique(created, -1); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", c.name, err)
	}
	c.docs = append(c.docs, created)
	return &UpdateResult{
		Acknowledged:  true,
		UpsertedCount: 1,
		UpsertedID:    created["_id"],
	}, nil
}

func (c *MemoryCollection) DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(filter)
	if i < 0 {
		return &DeleteResult{Acknowledged: true}, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return &DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// EnsureUniqueIndex registers a unique compound key. It fails with ErrDuplicate
// when the stored documents already violate it, as MongoDB does.
func (c *MemoryCollection) EnsureUniqueIndex(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.unique {
		if reflect.DeepEqual(existing, keys) {
			return nil
		}
	}
	for i := range c.docs {
		for j := i + 1; j < len(c.docs); j++ {
			if sameKey(c.docs[i], c.docs[j], keys) {
				return fmt.Errorf("create index %s: %w", c.name, ErrDuplicate)
			}
		}
	}
	c.unique = append(c.unique, append([]string(nil), keys...))
	return nil
}

// Len reports how many documents are stored.
func (c *MemoryCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *MemoryCollection) indexOf(filter bson.M) int {
	for i, d := range c.docs {
		if matches(d, filter) {
			return i
		}
	}
	return -1
}

// checkUnique must be called with the write lock held. skip is the index of
// the document being replaced, or -1.
func (c *MemoryCollection) checkUnique(doc bson.M, skip int) error {
	keys := append([][]string{{"_id"}}, c.unique...)
	for i, other := range c.docs {
		if i == skip {
			continue
		}
		for _, k := range keys {
			if sameKey(doc, other, k) {
				return ErrDuplicate
			}
		}
	}
	return nil
}

func sameKey(a, b bson.M, keys []string) bool {
	for _, k := range keys {
		if !valuesEqual(a[k], b[k]) {
			return false
		}
	}
	return true
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok {
			if want == nil {
				continue
			}
			return false
		}
		if !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// cloneDoc deep-copies nested documents and arrays so callers never share
// memory with what is stored.
func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		return cloneDoc(val)
	case map[string]interface{}:
		return map[string]interface{}(cloneDoc(val))
	case bson.A:
		out := make(bson.A, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	case bson.D:
		out := make(bson.D, len(val))
		for i, e := range val {
			out[i] = bson.E{Key: e.Key, Value: cloneValue(e.Value)}
		}
		return out
	}
	return v
}
