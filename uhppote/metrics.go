package uhppote

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registerer is the subset of prometheus.Registerer a caller supplies
// via WithMetrics. Callers pass prometheus.DefaultRegisterer or a
// prometheus.NewRegistry() of their own.
type Registerer = prometheus.Registerer

// metricsCollector tracks per-function-code call counts, plus counters
// for calls whose send/receive cycle timed out or failed otherwise.
// It is nil on a Client built without WithMetrics, and every method on
// it tolerates a nil receiver so call sites never need a guard.
type metricsCollector struct {
	calls    *prometheus.CounterVec
	timeouts *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

func newMetricsCollector(reg Registerer) *metricsCollector {
	m := &metricsCollector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uhppote",
			Name:      "calls_total",
			Help:      "Total controller operations attempted, by function code.",
		}, []string{"function"}),
		timeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uhppote",
			Name:      "timeouts_total",
			Help:      "Total operations that timed out waiting for a reply, by function code.",
		}, []string{"function"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uhppote",
			Name:      "errors_total",
			Help:      "Total operations whose send or receive failed for a reason other than timeout, by function code.",
		}, []string{"function"}),
	}

	reg.MustRegister(m.calls, m.timeouts, m.errors)
	return m
}

func (m *metricsCollector) observe(function byte, err error) {
	if m == nil {
		return
	}

	label := fmt.Sprintf("0x%02x", function)
	m.calls.WithLabelValues(label).Inc()

	if err == nil {
		return
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		m.timeouts.WithLabelValues(label).Inc()
		return
	}

	m.errors.WithLabelValues(label).Inc()
}
