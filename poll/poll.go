package poll

import "context"

// Waker re-arms the suspension point a computation was polled under.
// Wake must be safe to call from any goroutine and may fire more than
// once per suspension; drivers coalesce redundant wake-ups.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to the Waker interface.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// Context is the notification context a computation is polled with.
// Every computation advanced under one suspension point shares the same
// Context, so progress on any of them re-arms the same wake-up.
type Context struct {
	std   context.Context
	waker Waker
}

// NewContext pairs a cancellation context with a waker.
func NewContext(ctx context.Context, w Waker) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{std: ctx, waker: w}
}

// Std returns the cancellation context.
func (c *Context) Std() context.Context { return c.std }

// Waker returns the waker shared by this suspension point.
func (c *Context) Waker() Waker { return c.waker }

// Future is a unit of asynchronous work. Poll either completes it,
// returning (value, true), or leaves it pending, returning (zero, false).
// A pending Poll must arrange a wake-up through cx before returning,
// otherwise the enclosing driver has no reason to poll again.
// A Future must not be polled after it has completed.
type Future[T any] interface {
	Poll(cx *Context) (T, bool)
}

// Func adapts a function to the Future interface.
type Func[T any] func(cx *Context) (T, bool)

func (f Func[T]) Poll(cx *Context) (T, bool) { return f(cx) }

// Ready returns a future that completes with v on its first poll.
func Ready[T any](v T) Future[T] {
	return Func[T](func(*Context) (T, bool) { return v, true })
}

// Canceler is implemented by futures that hold resources needing explicit
// cleanup when they are discarded before completion.
type Canceler interface {
	Cancel()
}

// TryCancel runs f's cancellation path if it has one and reports whether
// f implemented Canceler.
func TryCancel(f any) bool {
	if c, ok := f.(Canceler); ok {
		c.Cancel()
		return true
	}
	return false
}
