package queue

import (
	"sync/atomic"
)

// Cache line size for padding to prevent false sharing
const cacheLinePadding = 128

// ringSlot is a single slot in the ring buffer
type ringSlot[T any] struct {
	// Sequence number for synchronization
	sequence atomic.Uint64
	value    T
}

// Ring is a bounded lock-free multi-producer multi-consumer queue.
//
// Each slot carries a sequence number: a slot at position p is ready for a
// consumer when its sequence is p+1 and ready for a producer when it is p.
// Head and tail are padded onto separate cache lines.
type Ring[T any] struct {
	ring []ringSlot[T]
	mask uint64

	_    [cacheLinePadding]byte
	head atomic.Uint64
	_    [cacheLinePadding - 8]byte
	tail atomic.Uint64
	_    [cacheLinePadding - 8]byte
}

// NewRing creates a ring sized to the next power of two that holds items,
// pre-loaded in order.
func NewRing[T any](items []T) *Ring[T] {
	capacity := nextPowerOfTwo(len(items))
	q := &Ring[T]{
		ring: make([]ringSlot[T], capacity),
		mask: uint64(capacity - 1), // #nosec G115 -- capacity is positive
	}
	for i := range q.ring {
		q.ring[i].sequence.Store(uint64(i)) // #nosec G115 -- i is a ring index
	}
	for _, v := range items {
		q.Push(v)
	}
	return q
}

// Push adds an item at the tail. It reports false if the ring is full.
func (q *Ring[T]) Push(v T) bool {
	for {
		tail := q.tail.Load()
		slot := &q.ring[tail&q.mask]
		diff := int64(slot.sequence.Load()) - int64(tail) // #nosec G115 -- wraparound is intended

		switch {
		case diff == 0:
			if q.tail.CompareAndSwap(tail, tail+1) {
				slot.value = v
				slot.sequence.Store(tail + 1)
				return true
			}
		case diff < 0:
			return false
		}
	}
}

// Pop removes the head item. A lost race with another consumer is retried,
// so false means the ring really is empty.
func (q *Ring[T]) Pop() (T, bool) {
	var zero T
	for {
		head := q.head.Load()
		slot := &q.ring[head&q.mask]
		diff := int64(slot.sequence.Load()) - int64(head+1) // #nosec G115 -- wraparound is intended

		switch {
		case diff == 0:
			if q.head.CompareAndSwap(head, head+1) {
				v := slot.value
				slot.value = zero
				// Release the slot to producers: position head+capacity.
				slot.sequence.Store(head + q.mask + 1)
				return v, true
			}
		case diff < 0:
			return zero, false
		}
	}
}

// Len returns an instantaneous estimate of queued items.
func (q *Ring[T]) Len() int {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head) // #nosec G115 -- bounded by capacity
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	power := 1
	for power < n {
		power *= 2
	}
	return power
}
