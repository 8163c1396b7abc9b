// Package optimistic provides a collection that mutates local state
// immediately, confirms the mutation against a remote source of truth,
// and rolls back when the remote call fails. Saved-service membership
// and booking status are both instances of it.
//
// Every mutation is tagged with a per-key sequence number. A remote
// outcome that resolves after a newer mutation was issued for the same
// key is discarded: it neither reconciles nor rolls back, so a slow
// response can never overwrite fresher local state.
package optimistic

import (
	"context"
	"sync"
)

// RemoteFunc performs the remote mutation. It may return an authoritative
// value; ok reports whether one was returned.
type RemoteFunc[V any] func(ctx context.Context) (authoritative V, ok bool, err error)

// ApplyFunc computes the optimistic local update from the current value.
// keep=false removes the key.
type ApplyFunc[V any] func(current V, exists bool) (next V, keep bool)

// Collection is a synchronized, optimistically updated map. It is safe
// for concurrent use; consumers read snapshots and never mutate directly.
type Collection[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	seq   map[K]uint64
	gen   uint64
}

// New creates an empty collection.
func New[K comparable, V any]() *Collection[K, V] {
	return &Collection[K, V]{
		items: make(map[K]V),
		seq:   make(map[K]uint64),
	}
}

// Get returns the value at key.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

// Has reports membership of key.
func (c *Collection[K, V]) Has(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[key]
	return ok
}

// Len returns the number of entries.
func (c *Collection[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Snapshot returns a copy of the collection.
func (c *Collection[K, V]) Snapshot() map[K]V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[K]V, len(c.items))
	for k, v := range c.items {
		out[k] = v
	}
	return out
}

// Replace swaps in an authoritative snapshot (e.g. a fresh server load).
// Outcomes of mutations issued before Replace are discarded when they
// resolve.
func (c *Collection[K, V]) Replace(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = make(map[K]V, len(items))
	for k, v := range items {
		c.items[k] = v
	}
	c.seq = make(map[K]uint64)
}

// Mutate applies the optimistic update, runs the remote call, and settles:
// on success an authoritative value (when provided) replaces the guess; on
// failure the pre-mutation value is restored and the error propagates.
// The value at key is therefore always one of: the optimistic guess, the
// server-confirmed value, or the pre-mutation value.
func (c *Collection[K, V]) Mutate(ctx context.Context, key K, apply ApplyFunc[V], remote RemoteFunc[V]) error {
	c.mu.Lock()
	prev, existed := c.items[key]
	c.seq[key]++
	issued := c.seq[key]
	issuedGen := c.gen

	next, keep := apply(prev, existed)
	if keep {
		c.items[key] = next
	} else {
		delete(c.items, key)
	}
	c.mu.Unlock()

	authoritative, ok, err := remote(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != issuedGen || c.seq[key] != issued {
		// Superseded by a newer mutation or an authoritative reload; the
		// caller still gets the error, the state belongs to the successor.
		return err
	}

	if err != nil {
		if existed {
			c.items[key] = prev
		} else {
			delete(c.items, key)
		}
		return err
	}

	if ok {
		c.items[key] = authoritative
	}
	return nil
}
