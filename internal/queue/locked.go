package queue

import "sync"

// Locked is a double-ended queue guarded by a mutex. The lock is held only
// for the O(1) slot update of a single push or pop.
//
// Items live in a growable ring buffer so pushes and pops at either end do
// not shift the backing slice.
type Locked[T any] struct {
	mu    sync.Mutex
	buf   []T
	head  int
	count int
}

// NewLocked creates a deque holding a copy of items, front first.
func NewLocked[T any](items []T) *Locked[T] {
	buf := make([]T, max(len(items), 1))
	copy(buf, items)
	return &Locked[T]{buf: buf, count: len(items)}
}

// PushBack appends v at the tail.
func (q *Locked[T]) PushBack(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.grow()
	q.buf[(q.head+q.count)%len(q.buf)] = v
	q.count++
}

// PushFront inserts v at the head.
func (q *Locked[T]) PushFront(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.grow()
	q.head = (q.head - 1 + len(q.buf)) % len(q.buf)
	q.buf[q.head] = v
	q.count++
}

// PopFront removes and returns the head item.
func (q *Locked[T]) PopFront() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.count == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v, true
}

// PopBack removes and returns the tail item.
func (q *Locked[T]) PopBack() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.count == 0 {
		return zero, false
	}
	idx := (q.head + q.count - 1) % len(q.buf)
	v := q.buf[idx]
	q.buf[idx] = zero
	q.count--
	return v, true
}

// Pop is PopFront.
func (q *Locked[T]) Pop() (T, bool) {
	return q.PopFront()
}

// Len returns the number of queued items.
func (q *Locked[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// grow doubles the buffer when full. Caller holds q.mu.
func (q *Locked[T]) grow() {
	if q.count < len(q.buf) {
		return
	}
	next := make([]T, len(q.buf)*2)
	for i := range q.count {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
