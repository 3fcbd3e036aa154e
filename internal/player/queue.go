package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrQueueClosed is returned by DequeueWait after the owning session has
// been torn down.
var ErrQueueClosed = errors.New("queue is closed")

// Queue is an ordered FIFO of tracks. Tracks are kept in insertion order
// and never deduplicated; the same track may be queued multiple times.
type Queue struct {
	mu     sync.Mutex
	items  []Track
	closed bool

	wake chan struct{}
	done chan struct{}
}

func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Enqueue appends a track to the back of the queue and wakes one waiter.
// Enqueueing on a closed queue is a no-op.
func (q *Queue) Enqueue(t Track) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, t)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// DequeueWait pops the front track, blocking until one is available.
// It returns ErrQueueClosed once the queue is closed, or the context error
// if ctx is cancelled first. The wait never dangles past session teardown.
func (q *Queue) DequeueWait(ctx context.Context) (Track, error) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return Track{}, ErrQueueClosed
		}
		if len(q.items) > 0 {
			t := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return t, nil
		}
		q.mu.Unlock()

		select {
		case <-q.wake:
		case <-q.done:
			return Track{}, ErrQueueClosed
		case <-ctx.Done():
			return Track{}, ctx.Err()
		}
	}
}

// Empty reports whether the queue currently holds no tracks.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Render returns up to limit numbered "n. title" lines in insertion order,
// plus the count of tracks truncated off the end.
func (q *Queue) Render(limit int) (lines []string, more int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.items {
		if i >= limit {
			return lines, len(q.items) - limit
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, t.Title))
	}
	return lines, 0
}

// Close discards all queued tracks and wakes every waiter with
// ErrQueueClosed. Safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	close(q.done)
}
