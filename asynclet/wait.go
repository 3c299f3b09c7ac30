package asynclet

import "github.com/asynclet/go-asynclet/poll"

// WaitFor returns a composite computation that reports primary's result
// and, as a side effect of being polled, sweeps every pending slot in g
// under the same notification context. A background slot maturing on a
// turn does not resume the caller separately; it rides the shared wake-up.
//
// The sweep's placement relative to the primary poll follows the group's
// PollOrder. The group is borrowed until the composite completes: Attach
// and Detach on g panic in between. A composite abandoned before
// completion, e.g. after Block returns a context error, must be released
// with poll.TryCancel; that returns the borrow and runs the primary's own
// cancellation path, if any.
func WaitFor[T any](g *Group, primary poll.Future[T]) poll.Future[T] {
	if primary == nil {
		panic("asynclet: WaitFor(nil)")
	}
	g.borrows++
	return &waitFut[T]{g: g, primary: primary}
}

// waitFut is one composite wait. It holds the group borrow from creation
// until it completes or is cancelled.
type waitFut[T any] struct {
	g         *Group
	primary   poll.Future[T]
	done      bool
	cancelled bool
}

// Poll implements poll.Future.
func (w *waitFut[T]) Poll(cx *poll.Context) (T, bool) {
	if w.cancelled {
		panic("asynclet: composite wait polled after cancellation")
	}
	if w.done {
		panic("asynclet: composite wait polled after completion")
	}
	g := w.g
	g.polling = true
	defer func() { g.polling = false }()
	v, ok := pollTurn(g, cx, w.primary)
	if ok {
		w.done = true
		g.borrows--
	}
	return v, ok
}

// Cancel implements poll.Canceler. It returns the group borrow taken by
// WaitFor and runs the primary computation's cancellation path, if any,
// exactly once. Cancelling a completed or already-cancelled composite is
// a no-op.
func (w *waitFut[T]) Cancel() {
	if w.done || w.cancelled {
		return
	}
	w.cancelled = true
	w.g.borrows--
	poll.TryCancel(w.primary)
}

// pollTurn runs one turn of a composite wait.
func pollTurn[T any](g *Group, cx *poll.Context, primary poll.Future[T]) (T, bool) {
	if g.opts.Order == GroupFirst {
		g.pollSlots(cx)
		return primary.Poll(cx)
	}
	v, ok := primary.Poll(cx)
	if !ok {
		g.pollSlots(cx)
	}
	return v, ok
}

// DetachAndWaitFor detaches h's slot and returns a composite that drives
// the detached computation to completion while still sweeping the rest of
// the group on every turn. A slot that had already completed resolves on
// the composite's first turn. This is the efficient form of detaching and
// awaiting separately, which would leave the rest of the group idle.
func DetachAndWaitFor[T any](g *Group, h Handle[T]) poll.Future[T] {
	sl := Detach(g, h)
	if v, ok := sl.Value(); ok {
		return WaitFor(g, poll.Ready(v))
	}
	fut, _ := sl.Future()
	return WaitFor(g, fut)
}
