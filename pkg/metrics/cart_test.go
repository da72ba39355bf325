package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCartMetricsCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncOperation("add_item")
	m.IncOperation("add_item")
	m.IncOperation("")
	m.IncWriteFailure()
	m.IncRestore("restored")

	if got := testutil.ToFloat64(m.operations.WithLabelValues("add_item")); got != 2 {
		t.Fatalf("unexpected add_item count: %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("empty op should count as unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.writeFailures); got != 1 {
		t.Fatalf("unexpected write failure count: %v", got)
	}
}

func TestCartMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *CartMetrics
	m.IncOperation("add_item")
	m.IncWriteFailure()
	m.IncRestore("empty")

	empty := NewCartMetrics(nil)
	empty.IncOperation("clear")
}
