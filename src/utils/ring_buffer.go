package utils

import "sync"

// DefaultRingCapacity is used when NewRingBuffer gets a non-positive capacity.
const DefaultRingCapacity = 100

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer. Once full, every Append
// overwrites the oldest element. Safe for concurrent use.
// -----------------------------------------------------------------------------

type RingBuffer[T any] struct {
	mu       sync.RWMutex
	data     []T
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}

	return &RingBuffer[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append adds items in order.
func (rb *RingBuffer[T]) Append(items ...T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for _, item := range items {
		rb.data[rb.index] = item
		rb.index = (rb.index + 1) % rb.capacity

		// Update size (never exceeds capacity)
		if rb.size < rb.capacity {
			rb.size++
		}
	}
}

// -----------------------------------------------------------------------------

// Latest returns up to n most recent items, oldest first.
func (rb *RingBuffer[T]) Latest(n int) []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.size == 0 || n <= 0 {
		return []T{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]T, count)

	// latest item is at index-1
	startIdx := (rb.index - count + rb.capacity) % rb.capacity
	for i := 0; i < count; i++ {
		result[i] = rb.data[(startIdx+i)%rb.capacity]
	}
	return result
}

// -----------------------------------------------------------------------------

// Capacity is the fixed number of items the buffer holds.
func (rb *RingBuffer[T]) Capacity() int {
	return rb.capacity
}
