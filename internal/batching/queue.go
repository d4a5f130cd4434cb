package batching

import (
	"fmt"
	"sync"
)

// Queue is a fixed-capacity FIFO of pending envelopes backed by a ring buffer.
// Safe for many concurrent producers and consumers; every operation holds the
// same mutex so depth and order are never observed torn.
//
// Ready delivers an edge notification after a push so a consumer can sleep
// instead of polling. A consumer must drain with PopUpTo until empty before
// waiting on Ready again, since notifications coalesce.
type Queue struct {
	mu     sync.Mutex
	buf    []*Envelope
	head   int // index of the oldest element
	size   int // current depth
	closed bool

	ready chan struct{}
}

// NewQueue creates a queue holding at most capacity envelopes. It panics if
// capacity is not positive; New validates configuration before calling it.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		panic(fmt.Sprintf("batching: queue capacity must be positive, got %d", capacity))
	}
	return &Queue{
		buf:   make([]*Envelope, capacity),
		ready: make(chan struct{}, 1),
	}
}

// Push appends e to the tail without blocking. Returns a *QueueFullError at
// capacity and ErrQueueClosed after Close.
func (q *Queue) Push(e *Envelope) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	if q.size == len(q.buf) {
		depth := q.size
		q.mu.Unlock()
		return &QueueFullError{Current: depth, Capacity: len(q.buf)}
	}
	q.buf[(q.head+q.size)%len(q.buf)] = e
	q.size++
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// PopUpTo removes and returns up to n envelopes from the head in FIFO order.
// Never blocks; returns nil when the queue is empty or n <= 0.
func (q *Queue) PopUpTo(n int) []*Envelope {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n > q.size {
		n = q.size
	}
	if n <= 0 {
		return nil
	}

	out := make([]*Envelope, n)
	for i := 0; i < n; i++ {
		out[i] = q.buf[q.head]
		q.buf[q.head] = nil
		q.head = (q.head + 1) % len(q.buf)
	}
	q.size -= n
	return out
}

// Depth returns the number of pending envelopes.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Capacity returns the fixed upper bound on pending envelopes.
func (q *Queue) Capacity() int {
	return len(q.buf)
}

// Close stops further pushes. Already queued envelopes remain poppable.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Ready returns the push notification channel.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}
