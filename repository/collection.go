// Package repository provides the in-memory canonical stores backing the
// admin tables. Each store holds the single authoritative copy of one
// entity collection, loaded from the academy backend and patched locally
// after every successful mutation; derived views never mutate it.
package repository

import (
	"sync"
)

// Record is implemented by canonical entity records.
type Record interface {
	RecordID() string
}

// CollectionState tracks the lifecycle of a loaded collection.
type CollectionState string

const (
	// StateNotLoaded means Load has never been attempted
	StateNotLoaded CollectionState = "not_loaded"
	// StateLoading means a load is in flight; views report loading, not empty
	StateLoading CollectionState = "loading"
	// StateReady means the collection mirrors the last successful snapshot
	StateReady CollectionState = "ready"
	// StateFailed means the last load failed and a retry is required
	StateFailed CollectionState = "failed"
)

// Collection is a concurrency-safe in-memory entity collection. Mutations
// replace whole records with the backend's canonical response; partial
// merges are never performed.
type Collection[T Record] struct {
	mu      sync.RWMutex
	items   []T
	state   CollectionState
	loadErr error
}

// NewCollection returns an empty, not-yet-loaded collection.
func NewCollection[T Record]() *Collection[T] {
	return &Collection[T]{state: StateNotLoaded}
}

// State returns the current lifecycle state.
func (c *Collection[T]) State() CollectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LoadError returns the error of the last failed load, if any.
func (c *Collection[T]) LoadError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// BeginLoad marks a load in flight. Existing items are kept until the load
// resolves so a failed reload does not wipe a previously good snapshot.
func (c *Collection[T]) BeginLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateLoading
	c.loadErr = nil
}

// CompleteLoad replaces the entire collection with the server snapshot.
func (c *Collection[T]) CompleteLoad(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.state = StateReady
	c.loadErr = nil
}

// FailLoad records a failed load; the collection contents are unchanged.
func (c *Collection[T]) FailLoad(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateFailed
	c.loadErr = err
}

// Ready reports whether derived views may treat the contents as current.
func (c *Collection[T]) Ready() bool {
	return c.State() == StateReady
}

// Snapshot returns a copy of the collection for a derivation pass.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records currently held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// ByID returns the record with the given id.
func (c *Collection[T]) ByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Prepend inserts a freshly created canonical record at the head of the
// collection, matching the dashboard's newest-first presentation.
func (c *Collection[T]) Prepend(record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{record}, c.items...)
}

// Replace swaps the record with the same id in place, preserving its
// position. It reports whether a record was found.
func (c *Collection[T]) Replace(record T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.RecordID() == record.RecordID() {
			c.items[i] = record
			return true
		}
	}
	return false
}

// Remove drops the record with the given id. It reports whether a record
// was found.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.RecordID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}
