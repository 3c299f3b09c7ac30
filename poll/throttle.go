package poll

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle caps how often fut is actually polled. Polls arriving faster
// than lim permits leave the future pending and schedule a wake-up for
// when the limiter next admits one, so a throttled computation keeps
// making progress without an external nudge.
func Throttle[T any](fut Future[T], lim *rate.Limiter) Future[T] {
	return Func[T](func(cx *Context) (T, bool) {
		r := lim.Reserve()
		if d := r.Delay(); d > 0 {
			r.Cancel()
			time.AfterFunc(d, cx.Waker().Wake)
			var zero T
			return zero, false
		}
		return fut.Poll(cx)
	})
}
