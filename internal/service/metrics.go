package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"apmatch/internal/routing"
)

// Metrics holds the pipeline-level prometheus metrics.
type Metrics struct {
	routedTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the pipeline metrics on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		routedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoices_routed_total",
				Help: "Total number of invoices routed, by destination.",
			},
			[]string{"destination"},
		),
	}
	if err := reg.Register(m.routedTotal); err != nil {
		return nil, err
	}
	return m, nil
}

// routed is nil-safe so the pipeline can run without metrics in tests and
// the batch runner.
func (m *Metrics) routed(dest routing.Destination) {
	if m == nil {
		return
	}
	m.routedTotal.WithLabelValues(string(dest)).Inc()
}
