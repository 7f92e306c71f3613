// Package correlator routes replies from a demultiplexing transport
// back to the in-flight request they belong to.
package correlator

import (
	"sync"
)

// Correlator tracks in-flight requests by ID and fans replies out to
// their channels. Channels must be buffered for the number of replies
// a request can receive; Send blocks otherwise.
type Correlator[T any] struct {
	n  uint32
	m  map[uint32]chan T
	mu sync.RWMutex
}

// New creates a new correlator
func New[T any]() *Correlator[T] {
	return &Correlator[T]{
		m: make(map[uint32]chan T),
	}
}

// Next registers ch for a new request and returns its ID
func (c *Correlator[T]) Next(ch chan T) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	c.m[c.n] = ch
	return c.n
}

// Send delivers a value to the request with the given ID. Values for
// unknown IDs are dropped.
func (c *Correlator[T]) Send(id uint32, val T) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ch, ok := c.m[id]; ok {
		ch <- val
	}
}

// Resolve delivers a terminal value and unregisters the ID in one step,
// so anything arriving after the terminal event is dropped.
func (c *Correlator[T]) Resolve(id uint32, val T) {
	c.mu.Lock()
	ch, ok := c.m[id]
	delete(c.m, id)
	c.mu.Unlock()

	if ok {
		ch <- val
	}
}

// Delete removes a correlation by ID
func (c *Correlator[T]) Delete(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, id)
}

// Close closes all pending channels and clears the correlator
func (c *Correlator[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.m {
		close(ch)
	}
	c.m = make(map[uint32]chan T)
}
