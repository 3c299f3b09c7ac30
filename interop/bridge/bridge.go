// Package bridge adapts goroutine-based work to the poll model, so that
// ordinary blocking Go code can be attached to a group as background work.
package bridge

import (
	"context"
	"sync"

	"github.com/asynclet/go-asynclet/poll"
)

// Result pairs a bridged function's return values into the single output
// a future carries.
type Result[T any] struct {
	Value T
	Err   error
}

// Task is a future backed by a goroutine. It is resolved off-thread and
// polled on the caller's thread; completion wakes whichever waker the
// most recent poll armed.
type Task[T any] struct {
	res  chan Result[T]
	out  Result[T]
	done bool
	stop context.CancelFunc

	mu    sync.Mutex
	waker poll.Waker
}

// Go runs fn on its own goroutine and returns a Task resolving to its
// result. fn observes cancellation through its context argument, which
// ends when the Task is cancelled or ctx ends.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	tctx, stop := context.WithCancel(ctx)
	t := &Task[T]{res: make(chan Result[T], 1), stop: stop}
	go func() {
		defer stop()
		v, err := fn(tctx)
		t.res <- Result[T]{Value: v, Err: err}
		t.notify()
	}()
	return t
}

// Poll implements poll.Future.
func (t *Task[T]) Poll(cx *poll.Context) (Result[T], bool) {
	if t.done {
		return t.out, true
	}
	select {
	case r := <-t.res:
		t.out, t.done = r, true
		return r, true
	default:
	}
	t.arm(cx.Waker())
	// Re-check after arming: a result landing between the first check
	// and arm would otherwise complete with no one left to wake.
	select {
	case r := <-t.res:
		t.out, t.done = r, true
		return r, true
	default:
	}
	return Result[T]{}, false
}

// Future returns t under the interface type the group operations accept,
// so type inference works at attach call sites.
func (t *Task[T]) Future() poll.Future[Result[T]] { return t }

// Cancel implements poll.Canceler by ending the task context. The
// goroutine still runs fn to completion; its result lands in the buffered
// channel, so nothing blocks or leaks.
func (t *Task[T]) Cancel() { t.stop() }

func (t *Task[T]) arm(w poll.Waker) {
	t.mu.Lock()
	t.waker = w
	t.mu.Unlock()
}

func (t *Task[T]) notify() {
	t.mu.Lock()
	w := t.waker
	t.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}
