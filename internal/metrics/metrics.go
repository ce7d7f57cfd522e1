// Package metrics exposes the Prometheus counters and histograms the
// scheduler, dispatcher, and workload runner update: frame count, dispatch
// latency per event kind, and payment attempts/failures. No teacher file
// wires Prometheus directly, but client_golang was already present in the
// teacher's own dependency surface; BLAST's frame/dispatch/payment loops are
// the natural place to exercise it instead of leaving it unused.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles every metric the simulation updates. Construct one with
// NewRegistry and register it with a prometheus.Registerer (or the default
// global one) at process start.
type Registry struct {
	FramesProcessed prometheus.Counter
	BlocksMined     prometheus.Counter

	DispatchTotal   *prometheus.CounterVec
	DispatchFailed  *prometheus.CounterVec
	DispatchLatency *prometheus.HistogramVec

	PaymentsAttempted prometheus.Counter
	PaymentsFailed    prometheus.Counter
	PaymentLatency    prometheus.Histogram
}

// NewRegistry constructs every metric under the "blast" namespace.
func NewRegistry() *Registry {
	return &Registry{
		FramesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blast", Subsystem: "scheduler", Name: "frames_processed_total",
			Help: "Number of simulation frames the scheduler has advanced through.",
		}),
		BlocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blast", Subsystem: "scheduler", Name: "blocks_mined_total",
			Help: "Number of regtest blocks mined by the scheduler's mining cadence.",
		}),
		DispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blast", Subsystem: "dispatcher", Name: "events_dispatched_total",
			Help: "Number of scheduled events dispatched, by event kind.",
		}, []string{"kind"}),
		DispatchFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blast", Subsystem: "dispatcher", Name: "events_failed_total",
			Help: "Number of dispatched events that returned an error, by event kind.",
		}, []string{"kind"}),
		DispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blast", Subsystem: "dispatcher", Name: "dispatch_latency_seconds",
			Help:    "Latency of a single event dispatch, by event kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		PaymentsAttempted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blast", Subsystem: "workload", Name: "payments_attempted_total",
			Help: "Number of SendPayment calls the workload runner has issued.",
		}),
		PaymentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blast", Subsystem: "workload", Name: "payments_failed_total",
			Help: "Number of SendPayment calls that did not settle.",
		}),
		PaymentLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blast", Subsystem: "workload", Name: "payment_latency_seconds",
			Help:    "Reported settlement latency of successful payments.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// MustRegister registers every metric with reg, panicking on a duplicate
// registration — the same pattern prometheus client_golang examples use at
// process start, where a collision is a programming error.
func (r *Registry) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		r.FramesProcessed,
		r.BlocksMined,
		r.DispatchTotal,
		r.DispatchFailed,
		r.DispatchLatency,
		r.PaymentsAttempted,
		r.PaymentsFailed,
		r.PaymentLatency,
	)
}
