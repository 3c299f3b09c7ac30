package bridge

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many bridged functions run concurrently. A Task routed
// through a full pool stays pending until a seat frees up.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a pool admitting at most n bridged functions at a time.
func NewPool(n int64) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(n)}
}

// Run is Go with admission bounded by p. Cancelling the task while it is
// queued resolves it with the context error without ever running fn.
func Run[T any](p *Pool, ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	return Go(ctx, func(tctx context.Context) (T, error) {
		if err := p.sem.Acquire(tctx, 1); err != nil {
			var zero T
			return zero, err
		}
		defer p.sem.Release(1)
		return fn(tctx)
	})
}
