// Package repository keeps typed collections in memory and persists each one
// as a serialized JSON array under a single store key.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"finfacil/internal/logger"
	"finfacil/internal/store"
)

// Store keys for the persisted collections.
const (
	KeyGoals         = "goals"
	KeyGoalEntries   = "goal_entries"
	KeyNotifications = "notifications"
)

// Repository is the capability services depend on.
type Repository[T any] interface {
	Get(id string) (T, bool)
	List() []T
	Put(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Collection is a Repository backed by one store key. Items keep insertion
// order; Put on an existing id replaces it in place.
type Collection[T any] struct {
	mu    sync.RWMutex
	store store.Store
	key   string
	keyOf func(T) string
	items []T
	index map[string]int
}

var _ Repository[struct{}] = (*Collection[struct{}])(nil)

// Open loads the collection saved under key. A missing, unreadable or
// corrupt blob is logged and yields an empty collection.
func Open[T any](ctx context.Context, s store.Store, key string, keyOf func(T) string) *Collection[T] {
	c := &Collection[T]{
		store: s,
		key:   key,
		keyOf: keyOf,
		index: make(map[string]int),
	}

	log := logger.Named("repository")
	blob, ok, err := s.Load(ctx, key)
	if err != nil {
		log.Warnw("failed to load collection, starting empty", "key", key, "error", err)
		return c
	}
	if !ok {
		return c
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		log.Warnw("failed to parse collection, starting empty", "key", key, "error", err)
		return c
	}
	for _, item := range items {
		c.set(item)
	}
	log.Debugw("loaded collection", "key", key, "count", len(c.items))
	return c
}

// Get returns the item with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// List returns a snapshot of all items in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Put inserts or replaces an item and persists the collection. The
// in-memory change is rolled back if saving fails.
func (c *Collection[T]) Put(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.keyOf(item)
	prev, existed := c.index[id]
	var old T
	if existed {
		old = c.items[prev]
	}
	c.set(item)

	if err := c.persist(ctx); err != nil {
		if existed {
			c.items[prev] = old
		} else {
			c.remove(id)
		}
		return err
	}
	return nil
}

// Delete removes the item with the given id. It reports false when no such
// item exists.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[id]; !ok {
		return false, nil
	}
	snapshot := append([]T(nil), c.items...)
	c.remove(id)

	if err := c.persist(ctx); err != nil {
		c.items = snapshot
		c.reindex()
		return false, err
	}
	return true, nil
}

// Replace swaps the whole collection for items and persists it.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.items
	c.items = nil
	c.index = make(map[string]int)
	for _, item := range items {
		c.set(item)
	}

	if err := c.persist(ctx); err != nil {
		c.items = snapshot
		c.reindex()
		return err
	}
	return nil
}

func (c *Collection[T]) set(item T) {
	id := c.keyOf(item)
	if i, ok := c.index[id]; ok {
		c.items[i] = item
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
}

func (c *Collection[T]) remove(id string) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.reindex()
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, item := range c.items {
		c.index[c.keyOf(item)] = i
	}
}

func (c *Collection[T]) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	return c.store.Save(ctx, c.key, blob)
}
