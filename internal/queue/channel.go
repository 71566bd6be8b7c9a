package queue

// Channel drains a buffered channel that was filled and closed up front.
// The runtime's channel lock provides the mutual exclusion.
type Channel[T any] struct {
	ch chan T
}

// NewChannel creates a closed channel queue holding items in order.
func NewChannel[T any](items []T) *Channel[T] {
	ch := make(chan T, len(items))
	for _, v := range items {
		ch <- v
	}
	close(ch)
	return &Channel[T]{ch: ch}
}

// Pop receives the next item. A closed, empty channel reports false, so Pop
// never blocks.
func (q *Channel[T]) Pop() (T, bool) {
	v, ok := <-q.ch
	return v, ok
}

// Len returns the number of buffered items.
func (q *Channel[T]) Len() int {
	return len(q.ch)
}
