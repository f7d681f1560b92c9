package metrics_test

import (
	"testing"

	"tracking/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			matched := 0
			for _, pair := range m.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestOperationsTotal(t *testing.T) {
	labels := map[string]string{"operation": "test_operation", "outcome": "ok"}
	before := counterValue(t, "tracking_operations_total", labels)

	metrics.OperationsTotal.WithLabelValues("test_operation", "ok").Inc()

	assert.InDelta(t, before+1, counterValue(t, "tracking_operations_total", labels), 1e-9)
}
