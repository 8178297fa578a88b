package event

import (
	"errors"
	"sync"
)

// Queue errors.
var (
	ErrQueueClosed = errors.New("queue is closed")
	ErrQueueFull   = errors.New("queue is full")
)

// DefaultCapacity is the queue capacity used by NewQueue.
const DefaultCapacity = 256

// Queue is a many-producer, single-consumer message queue. Any goroutine
// may send; the dispatch thread drains it between key events. Messages
// from one producer are delivered in the order they were sent.
//
// The message channel is never closed; Close releases blocked senders
// through the done channel and leaves queued messages drainable.
type Queue struct {
	mu     sync.RWMutex
	ch     chan Message
	done   chan struct{}
	closed bool
}

// NewQueue creates a queue with the default capacity.
func NewQueue() *Queue {
	return NewQueueSize(DefaultCapacity)
}

// NewQueueSize creates a queue holding up to capacity messages.
func NewQueueSize(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		ch:   make(chan Message, capacity),
		done: make(chan struct{}),
	}
}

// Send enqueues a message, blocking while the queue is full. A Close from
// another goroutine unblocks it with ErrQueueClosed.
func (q *Queue) Send(msg Message) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.ch <- msg:
		return nil
	case <-q.done:
		return ErrQueueClosed
	}
}

// TrySend enqueues a message without blocking. A full queue returns
// ErrQueueFull so producers can drop or retry.
func (q *Queue) TrySend(msg Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain returns all currently queued messages without blocking. Used by
// the dispatch thread before processing each key event.
func (q *Queue) Drain() []Message {
	var out []Message
	for {
		select {
		case msg := <-q.ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Close shuts the queue down. Subsequent sends fail with ErrQueueClosed,
// blocked senders are released, and queued messages remain drainable.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.closed = true
	close(q.done)
	return nil
}
