// Package queue provides a fixed-capacity FIFO of string keys.
package queue

import (
	ring "gopkg.in/eapache/queue.v1"
)

// Bounded is a FIFO that refuses new items once it holds Cap() of them.
// It is not safe for concurrent use.
type Bounded struct {
	q   *ring.Queue
	cap int
}

// NewBounded creates an empty queue holding at most capacity items.
// A non-positive capacity yields a queue that rejects every item.
func NewBounded(capacity int) *Bounded {
	if capacity < 0 {
		capacity = 0
	}
	return &Bounded{q: ring.New(), cap: capacity}
}

// TryEnqueue appends key, returning false without modifying the queue when full.
func (b *Bounded) TryEnqueue(key string) bool {
	if b.q.Length() >= b.cap {
		return false
	}
	b.q.Add(key)
	return true
}

// Dequeue removes and returns the oldest key.
func (b *Bounded) Dequeue() (string, bool) {
	if b.q.Length() == 0 {
		return "", false
	}
	return b.q.Remove().(string), true
}

// Peek returns the oldest key without removing it.
func (b *Bounded) Peek() (string, bool) {
	if b.q.Length() == 0 {
		return "", false
	}
	return b.q.Peek().(string), true
}

// Len returns the number of queued keys.
func (b *Bounded) Len() int {
	return b.q.Length()
}

// Cap returns the capacity.
func (b *Bounded) Cap() int {
	return b.cap
}

// Full reports whether another TryEnqueue would fail.
func (b *Bounded) Full() bool {
	return b.q.Length() >= b.cap
}

// Clear drops every queued key.
func (b *Bounded) Clear() {
	for b.q.Length() > 0 {
		b.q.Remove()
	}
}

// Items returns the queued keys, oldest first.
func (b *Bounded) Items() []string {
	items := make([]string, b.q.Length())
	for i := range items {
		items[i] = b.q.Get(i).(string)
	}
	return items
}
