package event

import (
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is used when a non-positive size is requested.
const DefaultQueueSize = 64

// Queue is a bounded FIFO of events. Senders never block: when the queue is
// full, one queued event is discarded to make room. Score and Lives updates
// go first since a later one supersedes them; Submit and Status are only
// dropped when nothing else is queued.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64

	sendMu  sync.Mutex // serialises senders while the queue is compacted
	pending []Event
}

// NewQueue creates a queue holding up to size events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Send enqueues e, discarding a queued event if the queue is full.
func (q *Queue) Send(e Event) {
	q.sendMu.Lock()
	defer q.sendMu.Unlock()

	select {
	case q.ch <- e:
		return
	default:
	}

	// The receiver only takes events out, so everything put back still fits.
	q.pending = q.pending[:0]
	for drained := false; !drained; {
		select {
		case old := <-q.ch:
			q.pending = append(q.pending, old)
		default:
			drained = true
		}
	}

	if len(q.pending) == cap(q.ch) {
		victim := 0
		for i, old := range q.pending {
			if Replaceable(old) {
				victim = i
				break
			}
		}
		q.pending = append(q.pending[:victim], q.pending[victim+1:]...)
		q.dropped.Add(1)
	}

	for _, old := range q.pending {
		q.ch <- old
	}
	clear(q.pending)
	q.ch <- e
}

// Replaceable reports whether a later event of the same kind fully
// supersedes e, so losing it costs the UI nothing.
func Replaceable(e Event) bool {
	switch e.(type) {
	case Score, Lives:
		return true
	}
	return false
}

// Events returns the receive side of the queue.
func (q *Queue) Events() <-chan Event {
	return q.ch
}

// Dropped returns how many events were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Ensure Queue satisfies Sink.
var _ Sink = (*Queue)(nil)
