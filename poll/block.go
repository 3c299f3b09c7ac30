package poll

import "context"

// Block drives fut on the calling goroutine until it completes or ctx
// ends, whichever comes first. It is the minimal host loop: poll once,
// park until the shared waker fires, poll again. On context expiry the
// future is abandoned as-is; run its cancellation path with TryCancel if
// it holds resources.
func Block[T any](ctx context.Context, fut Future[T]) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &parkWaker{ch: make(chan struct{}, 1)}
	cx := NewContext(ctx, w)
	for {
		if v, ok := fut.Poll(cx); ok {
			return v, nil
		}
		select {
		case <-w.ch:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// parkWaker unparks Block. The single-slot buffer coalesces wake-ups that
// arrive while the loop is already runnable.
type parkWaker struct {
	ch chan struct{}
}

func (w *parkWaker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}
