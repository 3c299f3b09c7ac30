package otel

// Nop is a no-op implementation of the asynclet.Observer interface.
// It reserves the hook surface for an OpenTelemetry-backed observer
// without adding the dependency.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) SlotAttached(uint64)       {}
func (*Nop) SlotCompleted(uint64)      {}
func (*Nop) SlotDetached(uint64, bool) {}
func (*Nop) SlotCancelled(uint64)      {}
func (*Nop) GroupPolled(int)           {}
