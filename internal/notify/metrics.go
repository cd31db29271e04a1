package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for notification delivery.
type Metrics struct {
	Emitted          *prometheus.CounterVec
	Dropped          prometheus.Counter
	Delivered        prometheus.Counter
	DeliveryFailures prometheus.Counter
}

// NewMetrics registers notification metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tally_notifications_emitted_total",
			Help: "Total number of notifications emitted by type",
		}, []string{"type"}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_notifications_dropped_total",
			Help: "Total number of notifications dropped because the buffer was full",
		}),
		Delivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_notifications_delivered_total",
			Help: "Total number of notifications delivered to the sink",
		}),
		DeliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_notifications_delivery_failures_total",
			Help: "Total number of notifications whose delivery failed",
		}),
	}
}

func (m *Metrics) IncEmitted(eventType string) {
	m.Emitted.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncDropped() {
	m.Dropped.Inc()
}

func (m *Metrics) AddDelivered(n int) {
	m.Delivered.Add(float64(n))
}

func (m *Metrics) AddDeliveryFailures(n int) {
	m.DeliveryFailures.Add(float64(n))
}
