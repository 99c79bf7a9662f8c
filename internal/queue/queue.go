package queue

import "sync"

// Queue is an append-only multi-producer queue drained by a single consumer.
//
// Producers append under a short-held lock; Drain swaps the pending slice
// for an empty one, so a drain observes every element pushed before it
// exactly once and elements pushed during a drain land in the next one.
// The zero value is ready to use.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T

	// spare is the slice handed out by the previous Drain. Consumer-only.
	spare []T
}

// Push appends v. It never blocks on the consumer.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// Len returns the number of pending elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain returns the pending elements in insertion order and empties the queue.
// The returned slice is only valid until the next call to Drain; it must be
// called from one goroutine at a time.
func (q *Queue[T]) Drain() []T {
	next := q.spare[:0]
	clear(q.spare)

	q.mu.Lock()
	out := q.items
	q.items = next
	q.mu.Unlock()

	q.spare = out
	return out
}
