package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart store activity.
type CartMetrics struct {
	operations    *prometheus.CounterVec
	writeFailures prometheus.Counter
	restores      *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	writeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_slot_write_failures_total",
		Help: "Best-effort slot writes that failed and were swallowed.",
	})
	restores := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_restores_total",
		Help: "Cart restores by outcome (restored, empty, discarded).",
	}, []string{"outcome"})
	reg.MustRegister(operations, writeFailures, restores)
	return &CartMetrics{
		operations:    operations,
		writeFailures: writeFailures,
		restores:      restores,
	}
}

// IncOperation increments the counter for the named mutation.
func (c *CartMetrics) IncOperation(op string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncWriteFailure increments the swallowed-write counter.
func (c *CartMetrics) IncWriteFailure() {
	if c == nil || c.writeFailures == nil {
		return
	}
	c.writeFailures.Inc()
}

// IncRestore increments the restore counter for the given outcome.
func (c *CartMetrics) IncRestore(outcome string) {
	if c == nil || c.restores == nil {
		return
	}
	c.restores.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
