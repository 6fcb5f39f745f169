package session

import "sync"

// Outbox is a bounded queue between a producer that must never block (the
// frame loop) and a slower consumer (a network writer). When full, the
// oldest item is dropped.
type Outbox[T any] struct {
	items     chan T
	done      chan struct{}
	closeOnce sync.Once
}

// NewOutbox creates an outbox holding up to size items. Size 1 keeps only
// the latest item.
func NewOutbox[T any](size int) *Outbox[T] {
	if size < 1 {
		size = 1
	}
	return &Outbox[T]{
		items: make(chan T, size),
		done:  make(chan struct{}),
	}
}

// Send queues v, dropping the oldest item if the buffer is full.
// Sends after Close are discarded.
func (o *Outbox[T]) Send(v T) {
	select {
	case <-o.done:
		return
	default:
	}

	select {
	case o.items <- v:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-o.items:
	default:
	}
	// Best effort: a concurrent sender may have taken the slot
	select {
	case o.items <- v:
	default:
	}
}

// Items returns the channel the consumer reads from.
func (o *Outbox[T]) Items() <-chan T {
	return o.items
}

// Done returns a channel that closes when the outbox is closed.
func (o *Outbox[T]) Done() <-chan struct{} {
	return o.done
}

// Close marks the outbox as done.
// Safe to call multiple times.
func (o *Outbox[T]) Close() {
	o.closeOnce.Do(func() {
		close(o.done)
	})
}
