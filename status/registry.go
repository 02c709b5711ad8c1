package status

import "sync/atomic"

// Registry holds simulation telemetry
// Counters are monotonic event totals; gauges are last-written values
// Writers cache pointers once and then update atomics directly
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}
