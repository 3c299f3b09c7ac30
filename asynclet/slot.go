package asynclet

import "github.com/asynclet/go-asynclet/poll"

// slot is the erased view of one attached computation. The result type
// lives behind this single indirection; everything else about a slot is
// statically typed in slotOf.
type slot interface {
	id() uint64
	pending() bool
	// pollOnce advances a pending slot and reports whether it completed
	// on this turn. Completed slots are never polled again.
	pollOnce(cx *poll.Context) bool
	// cancel runs the computation's own cancellation path, if any. Only
	// called on slots leaving the group.
	cancel()
}

type slotOf[T any] struct {
	sid  uint64
	fut  poll.Future[T]
	val  T
	done bool
}

func (s *slotOf[T]) id() uint64    { return s.sid }
func (s *slotOf[T]) pending() bool { return !s.done }

func (s *slotOf[T]) pollOnce(cx *poll.Context) bool {
	if s.done {
		return false
	}
	v, ok := s.fut.Poll(cx)
	if !ok {
		return false
	}
	s.val = v
	s.done = true
	s.fut = nil
	return true
}

func (s *slotOf[T]) cancel() {
	if s.done {
		return
	}
	poll.TryCancel(s.fut)
	s.fut = nil
}

// Slot is the detached record of one background computation: either the
// completed value or the still-pending computation, never both.
type Slot[T any] struct {
	val  T
	fut  poll.Future[T]
	done bool
}

// Completed reports whether the computation finished while attached.
func (s Slot[T]) Completed() bool { return s.done }

// Value returns the completed value; ok is false while still pending.
func (s Slot[T]) Value() (T, bool) { return s.val, s.done }

// Future returns the still-pending computation; ok is false once completed.
func (s Slot[T]) Future() (poll.Future[T], bool) { return s.fut, !s.done }
