package records

import (
	"context"
	"encoding/json"

	"github.com/agentdesk/policyminder/storage"
	"zombiezen.com/go/log"
)

// collection persists one entity type as a JSON array under a fixed
// store key. Every mutation reads the whole array, changes it in
// memory, and writes it back.
type collection[T Entity] struct {
	ctx    context.Context
	store  storage.Store
	key    string
	withID func(T, string) T
}

func newCollection[T Entity](ctx context.Context, store storage.Store, key string, withID func(T, string) T) *collection[T] {
	return &collection[T]{
		ctx:    ctx,
		store:  store,
		key:    key,
		withID: withID,
	}
}

// All returns every stored entity. An absent key or unparseable payload
// reads as an empty collection rather than an error.
func (c *collection[T]) All() []T {
	data, err := c.store.Get(c.key)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			log.Warnf(c.ctx, "unable to read collection %s, treating as empty: %v", c.key, err)
		}
		return []T{}
	}

	items := make([]T, 0)
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warnf(c.ctx, "malformed collection %s, treating as empty: %v", c.key, err)
		return []T{}
	}
	return items
}

func (c *collection[T]) ByID(id string) (T, bool) {
	for _, item := range c.All() {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Save assigns an id when the entity has none, replaces an existing
// entity in place, appends otherwise, and rewrites the collection.
func (c *collection[T]) Save(item T) (T, error) {
	if item.EntityID() == "" {
		item = c.withID(item, NewID())
	}

	items := c.All()
	replaced := false
	for i, existing := range items {
		if existing.EntityID() == item.EntityID() {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	if err := c.write(items); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// DeleteByID removes the matching entity. A missing id is a no-op, not
// an error.
func (c *collection[T]) DeleteByID(id string) error {
	return c.DeleteWhere(func(item T) bool {
		return item.EntityID() == id
	})
}

// DeleteWhere removes every entity the predicate matches and rewrites
// the collection.
func (c *collection[T]) DeleteWhere(match func(T) bool) error {
	items := c.All()
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	return c.write(kept)
}

func (c *collection[T]) write(items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &PersistenceError{Key: c.key, Err: err}
	}
	if err := c.store.Put(c.key, data); err != nil {
		return &PersistenceError{Key: c.key, Err: err}
	}
	return nil
}
