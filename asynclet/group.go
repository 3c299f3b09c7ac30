package asynclet

import (
	"fmt"

	"github.com/asynclet/go-asynclet/poll"
)

// Group owns an ordered set of background computations. It is exclusively
// owned: never share a Group between goroutines, and never mutate it while
// a composite returned by WaitFor or DetachAndWaitFor is still pending.
// Both rules are asserted at runtime; a violation is a programmer error
// and panics rather than surfacing as an error value.
type Group struct {
	slots   []slot
	nextID  uint64
	opts    Options
	obs     Observer
	borrows int
	polling bool
}

// New returns an empty group.
func New(optFns ...Option) *Group {
	g := &Group{opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&g.opts)
	}
	g.obs = g.opts.Observer
	return g
}

// Len returns the number of attached slots, completed ones included.
func (g *Group) Len() int { return len(g.slots) }

// Pending returns the number of attached slots that have not completed.
func (g *Group) Pending() int {
	n := 0
	for _, s := range g.slots {
		if s.pending() {
			n++
		}
	}
	return n
}

// Handle is the opaque capability returned by Attach. It carries no value;
// it only routes a later Detach back to the slot it was minted for. A
// Handle is single-use and valid only for the group that minted it.
type Handle[T any] struct {
	group *Group
	sid   uint64
}

// Attach appends fut to the group as a pending slot. Attach never polls;
// the computation is advanced only by later composite waits. Slots are
// swept in attach order.
func Attach[T any](g *Group, fut poll.Future[T]) Handle[T] {
	g.assertUnborrowed("Attach")
	if fut == nil {
		panic("asynclet: Attach(nil)")
	}
	g.nextID++
	id := g.nextID
	g.slots = append(g.slots, &slotOf[T]{sid: id, fut: fut})
	if g.obs != nil {
		g.obs.SlotAttached(id)
	}
	return Handle[T]{group: g, sid: id}
}

// Detach removes exactly the slot h was minted for, preserving the
// relative order of every other slot, and returns its state as of the
// last sweep. Detach itself never polls. It panics on a handle minted by
// another group or one already redeemed.
func Detach[T any](g *Group, h Handle[T]) Slot[T] {
	g.assertUnborrowed("Detach")
	if h.group != g {
		panic("asynclet: handle was not minted by this group")
	}
	for i, s := range g.slots {
		if s.id() != h.sid {
			continue
		}
		st := s.(*slotOf[T])
		g.remove(i)
		if g.obs != nil {
			g.obs.SlotDetached(st.sid, st.done)
		}
		return Slot[T]{val: st.val, fut: st.fut, done: st.done}
	}
	panic(fmt.Sprintf("asynclet: slot %d already detached", h.sid))
}

// Selector names a slot position among same-typed slots for DetachBy.
// The zero value selects the first (earliest-attached) match.
type Selector struct {
	skip int
}

// First selects the earliest-attached slot of the requested type.
func First() Selector { return Selector{} }

// Skip passes over n earlier matches before selecting; Skip(0) == First().
func Skip(n int) Selector {
	if n < 0 {
		panic("asynclet: Skip(n < 0)")
	}
	return Selector{skip: n}
}

// DetachBy removes the slot selected by sel among those whose result type
// is T, earliest-attached first. ok is false when no slot matches, in
// which case the group is unchanged.
func DetachBy[T any](g *Group, sel Selector) (Slot[T], bool) {
	g.assertUnborrowed("DetachBy")
	skip := sel.skip
	for i, s := range g.slots {
		st, match := s.(*slotOf[T])
		if !match {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		g.remove(i)
		if g.obs != nil {
			g.obs.SlotDetached(st.sid, st.done)
		}
		return Slot[T]{val: st.val, fut: st.fut, done: st.done}, true
	}
	return Slot[T]{}, false
}

// DetachAndCancel detaches h's slot and, if it is still pending, runs its
// cancellation path exactly once. Sibling slots are untouched. Use it to
// relinquish a computation bound to a scope that is about to end, so the
// group stays usable afterwards.
func DetachAndCancel[T any](g *Group, h Handle[T]) {
	sl := Detach(g, h)
	if fut, ok := sl.Future(); ok {
		poll.TryCancel(fut)
		if g.obs != nil {
			g.obs.SlotCancelled(h.sid)
		}
	}
}

// Close cancels every still-pending slot in reverse attach order and
// empties the group. Completed values are discarded. Go has no destructor,
// so a group holding cancellable computations should be closed before it
// goes out of scope.
func (g *Group) Close() {
	g.assertUnborrowed("Close")
	for i := len(g.slots) - 1; i >= 0; i-- {
		s := g.slots[i]
		if g.obs != nil {
			g.obs.SlotDetached(s.id(), !s.pending())
		}
		if s.pending() {
			s.cancel()
			if g.obs != nil {
				g.obs.SlotCancelled(s.id())
			}
		}
	}
	g.slots = nil
}

func (g *Group) remove(i int) {
	copy(g.slots[i:], g.slots[i+1:])
	g.slots[len(g.slots)-1] = nil
	g.slots = g.slots[:len(g.slots)-1]
}

func (g *Group) assertUnborrowed(op string) {
	if g.polling {
		panic("asynclet: " + op + " during a poll of the same group")
	}
	if g.borrows > 0 {
		panic("asynclet: " + op + " while a composite wait is outstanding")
	}
}

// pollSlots sweeps every pending slot once, left to right in attach order.
func (g *Group) pollSlots(cx *poll.Context) {
	pending := 0
	for _, s := range g.slots {
		if !s.pending() {
			continue
		}
		if s.pollOnce(cx) {
			if g.obs != nil {
				g.obs.SlotCompleted(s.id())
			}
		} else {
			pending++
		}
	}
	if g.obs != nil {
		g.obs.GroupPolled(pending)
	}
}
