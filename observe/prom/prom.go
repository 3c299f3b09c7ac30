// Package prom exports group lifecycle metrics through Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer implements the asynclet.Observer interface on Prometheus
// collectors registered against an injected registerer.
type Observer struct {
	attached  prometheus.Counter
	completed prometheus.Counter
	detached  *prometheus.CounterVec
	cancelled prometheus.Counter
	sweeps    prometheus.Counter
	pending   prometheus.Gauge
}

// New registers the collectors with reg and returns the observer.
func New(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)
	return &Observer{
		attached: f.NewCounter(prometheus.CounterOpts{
			Namespace: "asynclet",
			Name:      "slots_attached_total",
			Help:      "Background computations attached to a group.",
		}),
		completed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "asynclet",
			Name:      "slots_completed_total",
			Help:      "Slots that transitioned from pending to completed.",
		}),
		detached: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asynclet",
			Name:      "slots_detached_total",
			Help:      "Slots removed from a group, by state at detach time.",
		}, []string{"state"}),
		cancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: "asynclet",
			Name:      "slots_cancelled_total",
			Help:      "Pending slots whose cancellation path ran.",
		}),
		sweeps: f.NewCounter(prometheus.CounterOpts{
			Namespace: "asynclet",
			Name:      "group_sweeps_total",
			Help:      "Background sweeps run by composite waits.",
		}),
		pending: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "asynclet",
			Name:      "slots_pending",
			Help:      "Attached slots currently pending.",
		}),
	}
}

// SlotAttached records a new pending slot.
func (o *Observer) SlotAttached(uint64) {
	o.attached.Inc()
	o.pending.Inc()
}

// SlotCompleted records a pending slot maturing.
func (o *Observer) SlotCompleted(uint64) {
	o.completed.Inc()
	o.pending.Dec()
}

// SlotDetached records a slot leaving its group.
func (o *Observer) SlotDetached(_ uint64, completed bool) {
	state := "pending"
	if completed {
		state = "completed"
	} else {
		o.pending.Dec()
	}
	o.detached.WithLabelValues(state).Inc()
}

// SlotCancelled records a pending slot's cancellation path running.
func (o *Observer) SlotCancelled(uint64) {
	o.cancelled.Inc()
}

// GroupPolled records one background sweep.
func (o *Observer) GroupPolled(int) {
	o.sweeps.Inc()
}
