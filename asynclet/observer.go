package asynclet

// Observer receives lifecycle hooks from a Group. Implementations must be
// cheap: hooks run inline on the polling path.
type Observer interface {
	SlotAttached(id uint64)
	SlotCompleted(id uint64)
	SlotDetached(id uint64, completed bool)
	SlotCancelled(id uint64)
	// GroupPolled runs after each background sweep with the number of
	// slots still pending.
	GroupPolled(pending int)
}

// PollOrder selects when the background sweep runs relative to the primary
// computation inside a composite wait.
type PollOrder int

const (
	// PrimaryFirst polls the primary computation first and sweeps the
	// group only on turns where the primary suspended. Turns where the
	// primary resolves immediately cost nothing.
	PrimaryFirst PollOrder = iota
	// GroupFirst sweeps the group unconditionally before polling the
	// primary, guaranteeing background progress even on the final turn.
	GroupFirst
)

type Option func(*Options)

type Options struct {
	Order    PollOrder
	Observer Observer
}

func defaultOptions() Options { return Options{Order: PrimaryFirst} }

// WithPollOrder selects the sweep ordering used by WaitFor composites.
func WithPollOrder(o PollOrder) Option { return func(opts *Options) { opts.Order = o } }

// WithObserver installs lifecycle hooks.
func WithObserver(obs Observer) Option { return func(opts *Options) { opts.Observer = obs } }
