package state

import (
	"slices"
	"sync"
)

// Container is an observable holder of a single value. Subscribers are
// called with the current value on Subscribe and then once per Set or
// Update, in call order.
//
// Callbacks run synchronously on the goroutine that called Set or Update
// and must not call Set, Update or Subscribe on the same container.
type Container[T any] struct {
	notify sync.Mutex // serializes change + delivery
	mu     sync.RWMutex
	value  T
	clone  func(T) T
	subs   map[uint64]func(T)
	nextID uint64
}

// NewContainer returns a container holding initial. clone, when non-nil, is
// applied to every value handed in or out so callers never share backing
// arrays or maps with the container.
func NewContainer[T any](initial T, clone func(T) T) *Container[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Container[T]{
		value: clone(initial),
		clone: clone,
		subs:  make(map[uint64]func(T)),
	}
}

// Get returns a copy of the current value.
func (c *Container[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clone(c.value)
}

// Set replaces the value and notifies subscribers.
func (c *Container[T]) Set(v T) {
	c.notify.Lock()
	defer c.notify.Unlock()

	c.mu.Lock()
	c.value = c.clone(v)
	current, subs := c.value, c.subscribers()
	c.mu.Unlock()

	c.deliver(current, subs)
}

// Update replaces the value with fn(current) and notifies subscribers. fn
// receives a copy it may mutate freely.
func (c *Container[T]) Update(fn func(T) T) {
	c.notify.Lock()
	defer c.notify.Unlock()

	c.mu.Lock()
	c.value = c.clone(fn(c.clone(c.value)))
	current, subs := c.value, c.subscribers()
	c.mu.Unlock()

	c.deliver(current, subs)
}

// Subscribe registers cb, calls it immediately with the current value and
// returns a function that removes the subscription.
func (c *Container[T]) Subscribe(cb func(T)) (unsubscribe func()) {
	c.notify.Lock()
	defer c.notify.Unlock()

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = cb
	current := c.clone(c.value)
	c.mu.Unlock()

	cb(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// subscribers returns the callbacks in registration order. Caller holds mu.
func (c *Container[T]) subscribers() []func(T) {
	if len(c.subs) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(T), len(ids))
	for i, id := range ids {
		out[i] = c.subs[id]
	}
	return out
}

func (c *Container[T]) deliver(current T, subs []func(T)) {
	for _, cb := range subs {
		cb(c.clone(current))
	}
}
