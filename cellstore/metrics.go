package cellstore

import "github.com/prometheus/client_golang/prometheus"

// Metrics carries the optional instrumentation counters a store mutates.
// Any field may be nil; nil counters are simply skipped.
type Metrics struct {
	Puts   prometheus.Counter
	Gets   prometheus.Counter
	Misses prometheus.Counter
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

func (m *Metrics) put() {
	if m != nil {
		inc(m.Puts)
	}
}

func (m *Metrics) get() {
	if m != nil {
		inc(m.Gets)
	}
}

func (m *Metrics) miss() {
	if m != nil {
		inc(m.Misses)
	}
}
