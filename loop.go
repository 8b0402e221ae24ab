package illumiterm

import (
	"context"
	"errors"
	"time"
)

// Loop schedules work on the single thread that owns all session state.
// Post may be called from any goroutine.
type Loop interface {
	Post(fn func())
}

// LoopFunc adapts a function to Loop
type LoopFunc func(fn func())

// Post calls f
func (f LoopFunc) Post(fn func()) {
	f(fn)
}

// ErrQueueClosed is returned by Run after Close
var ErrQueueClosed = errors.New("queue closed")

// Queue is a channel-backed Loop. Whoever calls Run (or Drain) is the loop
// thread.
type Queue struct {
	funcs chan func()
	done  chan struct{}
}

// NewQueue creates a queue that buffers up to size pending functions before
// Post blocks
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{
		funcs: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post schedules fn. Functions posted after Close are dropped.
func (q *Queue) Post(fn func()) {
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.funcs <- fn:
	case <-q.done:
	}
}

// C exposes the pending functions for callers that multiplex the queue with
// other channels
func (q *Queue) C() <-chan func() {
	return q.funcs
}

// Close stops Run. Safe to call from a posted function.
func (q *Queue) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}

// Done is closed by Close
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Run executes posted functions until Close is called or ctx ends
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-q.funcs:
			fn()
		case <-q.done:
			return ErrQueueClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Drain runs everything currently pending without waiting for more. Returns
// the number of functions run.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.funcs:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunUntil runs posted functions until cond holds or timeout elapses.
// Reports whether cond was met.
func (q *Queue) RunUntil(cond func() bool, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for !cond() {
		select {
		case fn := <-q.funcs:
			fn()
		case <-deadline.C:
			return cond()
		}
	}
	return true
}
