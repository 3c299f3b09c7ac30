// Package asynclet attaches background computations to a lexical scope and
// advances them opportunistically: whenever the computation the caller is
// actually waiting on is polled, every still-pending member of the group is
// polled too, under the same notification context. No goroutine is spawned,
// no lock is taken and no allocation happens past the slot append; the
// group is a building block for single-threaded cooperative schedulers,
// not a task executor.
//
// A Group is exclusively owned. Attach and Detach mutate it in place and
// hand back a typed Handle per attachment; the set of live handles is
// checked at runtime, so redeeming a stale or foreign handle panics
// instead of corrupting a sibling slot.
package asynclet
